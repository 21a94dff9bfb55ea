// Package neserr defines the structured error kinds the core can return.
//
// Everything else the core encounters — reads from unmapped regions, PPU
// open-bus, reads of write-only registers — is not an error; it returns
// defined open-bus behavior instead.
package neserr

import "fmt"

// InvalidHeaderError is returned when ROM bytes are too short or the
// iNES/NES 2.0 signature is wrong.
type InvalidHeaderError struct {
	Reason string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid rom header: %s", e.Reason)
}

// UnsupportedMapperError is returned when a ROM passed to LoadROM names a mapper number
// this build does not implement. Fatal for that ROM, not for the process.
type UnsupportedMapperError struct {
	Number uint16
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper: %d", e.Number)
}

// CpuCorruptedError is returned when the CPU has executed a KIL/JAM opcode
// and halted permanently. Recoverable by reset.
type CpuCorruptedError struct {
	PC     uint16
	Opcode uint8
}

func (e *CpuCorruptedError) Error() string {
	return fmt.Sprintf("cpu halted on KIL opcode $%02X at $%04X", e.Opcode, e.PC)
}

// IncompatibleSaveStateError is returned when a save-state blob's version
// or shape does not match this build. Recoverable by discarding the state.
type IncompatibleSaveStateError struct {
	WantVersion uint32
	GotVersion  uint32
}

func (e *IncompatibleSaveStateError) Error() string {
	return fmt.Sprintf("incompatible save state: want version %d, got %d", e.WantVersion, e.GotVersion)
}

// SampleRateUnsupportedError is returned when the host requests an audio
// output rate outside the 8-96 kHz range.
type SampleRateUnsupportedError struct {
	Requested int
}

func (e *SampleRateUnsupportedError) Error() string {
	return fmt.Sprintf("unsupported sample rate: %d Hz (must be 8000-96000)", e.Requested)
}
