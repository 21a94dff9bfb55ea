package cartridge

import (
	"nescore/internal/neserr"
	"testing"
)

// buildINESROM assembles a minimal iNES 1.0 ROM image: a 16-byte header
// plus prgBanks*16KiB of PRG-ROM and chrBanks*8KiB of CHR-ROM, each filled
// with its bank index so tests can assert on which bank landed where.
func buildINESROM(prgBanks, chrBanks int, mapperID uint8, flags6Extra uint8) []byte {
	header := make([]byte, 16)
	copy(header[0:4], []byte{0x4E, 0x45, 0x53, 0x1A})
	header[4] = uint8(prgBanks)
	header[5] = uint8(chrBanks)
	header[6] = (mapperID&0x0F)<<4 | flags6Extra
	header[7] = mapperID & 0xF0

	rom := append([]byte{}, header...)
	for b := 0; b < prgBanks; b++ {
		bank := make([]byte, 0x4000)
		for i := range bank {
			bank[i] = uint8(b)
		}
		rom = append(rom, bank...)
	}
	for b := 0; b < chrBanks; b++ {
		bank := make([]byte, 0x2000)
		for i := range bank {
			bank[i] = uint8(0x80 + b)
		}
		rom = append(rom, bank...)
	}
	return rom
}

func TestLoadFromBytesRejectsShortHeader(t *testing.T) {
	_, err := LoadFromBytes([]byte{0x4E, 0x45, 0x53})
	if _, ok := err.(*neserr.InvalidHeaderError); !ok {
		t.Fatalf("got error %v (%T), want *InvalidHeaderError", err, err)
	}
}

func TestLoadFromBytesRejectsBadSignature(t *testing.T) {
	rom := buildINESROM(1, 1, 0, 0)
	rom[0] = 'X'
	_, err := LoadFromBytes(rom)
	if _, ok := err.(*neserr.InvalidHeaderError); !ok {
		t.Fatalf("got error %v (%T), want *InvalidHeaderError", err, err)
	}
}

func TestLoadFromBytesRejectsUnsupportedMapper(t *testing.T) {
	// Mapper 19 (Namco163) is deliberately not implemented this pass.
	rom := buildINESROM(1, 1, 19, 0)
	_, err := LoadFromBytes(rom)
	uerr, ok := err.(*neserr.UnsupportedMapperError)
	if !ok {
		t.Fatalf("got error %v (%T), want *UnsupportedMapperError", err, err)
	}
	if uerr.Number != 19 {
		t.Errorf("UnsupportedMapperError.Number = %d, want 19", uerr.Number)
	}
}

func TestLoadFromBytesNROM16KiBMirroring(t *testing.T) {
	rom := buildINESROM(1, 1, 0, 0)
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}

	if got := cart.ReadPRG(0x8000); got != 0x00 {
		t.Errorf("ReadPRG($8000) = $%02X, want $00", got)
	}
	if got := cart.ReadPRG(0xC000); got != cart.ReadPRG(0x8000) {
		t.Error("a single 16KiB PRG bank should mirror into $C000-$FFFF")
	}
}

func TestLoadFromBytesVerticalMirroringFlag(t *testing.T) {
	rom := buildINESROM(1, 1, 0, 0x01) // flags6 bit 0: vertical mirroring
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if cart.Mirroring() != MirrorVertical {
		t.Errorf("Mirroring() = %v, want vertical", cart.Mirroring())
	}
}

func TestLoadFromBytesCHRRAMWhenCHRROMSizeIsZero(t *testing.T) {
	rom := buildINESROM(1, 0, 0, 0)
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	cart.WriteCHR(0x0000, 0x55)
	if got := cart.ReadCHR(0x0000); got != 0x55 {
		t.Errorf("CHR-RAM readback = $%02X, want $55", got)
	}
}

func TestBatterySRAMNilWithoutBatteryFlag(t *testing.T) {
	rom := buildINESROM(1, 1, 0, 0)
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if cart.BatterySRAM() != nil {
		t.Error("BatterySRAM() should be nil when flags6 battery bit is unset")
	}
}

func TestBatterySRAMRoundTripWithBatteryFlag(t *testing.T) {
	rom := buildINESROM(1, 1, 0, 0x02) // flags6 bit 1: battery
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	cart.WritePRG(0x6000, 0x42)
	sram := cart.BatterySRAM()
	if sram == nil {
		t.Fatal("BatterySRAM() should be non-nil with the battery flag set")
	}

	fresh := append([]byte{}, sram...)
	cart2, _ := LoadFromBytes(rom)
	cart2.LoadBatterySRAM(fresh)
	if got := cart2.ReadPRG(0x6000); got != 0x42 {
		t.Errorf("ReadPRG($6000) after LoadBatterySRAM = $%02X, want $42", got)
	}
}

func TestCartridgeRAMStateRoundTrip(t *testing.T) {
	rom := buildINESROM(1, 0, 0, 0) // CHR-RAM
	cart, err := LoadFromBytes(rom)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	cart.WritePRG(0x6000, 0x11)
	cart.WriteCHR(0x0000, 0x22)

	s := cart.ExportState()

	cart2, _ := LoadFromBytes(rom)
	cart2.ImportState(s)
	if got := cart2.ReadPRG(0x6000); got != 0x11 {
		t.Errorf("restored PRG-RAM = $%02X, want $11", got)
	}
	if got := cart2.ReadCHR(0x0000); got != 0x22 {
		t.Errorf("restored CHR-RAM = $%02X, want $22", got)
	}
}

func TestNewMapperDispatchesVariantIDsToSameFamily(t *testing.T) {
	cart := &Cartridge{prgROM: make([]uint8, 0x8000), chrROM: make([]uint8, 0x2000)}

	m1, err := NewMapper(1, cart)
	if err != nil {
		t.Fatalf("NewMapper(1): %v", err)
	}
	m155, err := NewMapper(155, cart)
	if err != nil {
		t.Fatalf("NewMapper(155): %v", err)
	}
	if _, ok := m1.(*mapper001); !ok {
		t.Errorf("NewMapper(1) = %T, want *mapper001", m1)
	}
	if _, ok := m155.(*mapper001); !ok {
		t.Errorf("NewMapper(155) = %T, want *mapper001", m155)
	}
}
