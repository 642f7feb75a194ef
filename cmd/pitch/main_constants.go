package main

// Default command-line flag values
const (
	defaultSampleRate = 44100.0 // CD quality sample rate
	defaultChannels   = 2       // Stereo
	defaultPitch      = 1.5     // Perfect fifth up
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone
	testSignalSeconds   = 1.0    // Default test signal length
	testSignalAmplitude = 0.5
	aliasProbeFrequency = 15000.0 // Folds back when pitched up past Nyquist
)

// Demo sample rates for testing
const (
	sampleRateCD    = 44100.0 // CD quality
	sampleRateDAT   = 48000.0 // DAT/DVD
	sampleRateHiRes = 96000.0 // Hi-res audio
)

// Demo channel configurations
const (
	monoChannels   = 1
	stereoChannels = 2
	surround5_1    = 6
	surround7_1    = 8
)

// Memory conversion
const (
	bytesPerKilobyte = 1024
)
