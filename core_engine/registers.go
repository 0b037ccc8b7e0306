package core_engine

// Memory map regions.
const (
	// Interrupt vector address table; word 0 is the reset vector.
	RegionVectors = 0x0000

	// Start of program ROM after the vector table.
	RegionROM = 0x0050

	// On-chip I/O region 1: flash control, RTC, SSU, timer W.
	RegionIO1     = 0xF020
	RegionIO1Size = 0xE0

	// Start of on-chip RAM.
	RegionRAM    = 0xF780
	RegionRAMEnd = 0xFF80

	// On-chip I/O region 2: SCI3, watchdog, A/DC, port data registers.
	RegionIO2     = 0xFF80
	RegionIO2Size = 0x80

	AddrSpaceSize = 0x10000
)

// I/O region 1 registers.
const (
	RegFLMCR1 = 0xF020

	RegRSECDR = 0xF025
	RegRMINDR = 0xF026
	RegRHRDR  = 0xF027
	RegRWKDR  = 0xF028
	RegRTCCR1 = 0xF029
	RegRTCCR2 = 0xF02A
	RegRTCCSR = 0xF02B
	RegRTCFLG = 0xF02C

	RegSSCRH = 0xF0E0
	RegSSCRL = 0xF0E1
	RegSSMR  = 0xF0E2
	RegSSER  = 0xF0E3
	RegSSSR  = 0xF0E4
	RegSSRDR = 0xF0E9
	RegSSTDR = 0xF0EB

	RegTMRW  = 0xF0F0
	RegTCRW  = 0xF0F1
	RegTIERW = 0xF0F2
	RegTSRW  = 0xF0F3
	RegTCNT  = 0xF0F6
	RegGRA   = 0xF0F8
	RegGRB   = 0xF0FA
	RegGRC   = 0xF0FC
	RegGRD   = 0xF0FE
)

// I/O region 2 registers.
const (
	RegSPCR = 0xFF91

	RegSMR3 = 0xFF98
	RegBRR3 = 0xFF99
	RegSCR3 = 0xFF9A
	RegTDR3 = 0xFF9B
	RegSSR3 = 0xFF9C
	RegRDR3 = 0xFF9D
	RegSEMR = 0xFF9E
	RegIRCR = 0xFFA7

	RegTMWD    = 0xFFB0
	RegTCSRWD1 = 0xFFB1
	RegTCSRWD2 = 0xFFB2
	RegTCWD    = 0xFFB3

	RegADRR = 0xFFBC
	RegAMR  = 0xFFBE
	RegADSR = 0xFFBF

	RegPDR1 = 0xFFD4
	RegPDR3 = 0xFFD6
	RegPDR8 = 0xFFDB
	RegPDR9 = 0xFFDC
	RegPDRB = 0xFFDE
)

// 15.3.5 SS Status Register (SSSR) bits.
const (
	SSSRce   = 0x01
	SSSRrdrf = 0x02
	SSSRtdre = 0x04
	SSSRtend = 0x08
	SSSRorer = 0x40
)

// SCI3 Serial Status Register (SSR3) bits.
const (
	SSR3tend = 0x04
	SSR3per  = 0x08
	SSR3fer  = 0x10
	SSR3oer  = 0x20
	SSR3rdrf = 0x40
	SSR3tdre = 0x80
)

// SCI3 Serial Control Register (SCR3) bits.
const (
	SCR3re = 0x10
	SCR3te = 0x20
)

// A/D Mode Register (AMR) fields. The channel-select nibble addresses the
// analog inputs starting at AN0 = 4.
const (
	AMRChannelMask = 0x0F
	AMRClockMask   = 0xF0

	ADCChannelAN0 = 4
	ADCChannelAN5 = ADCChannelAN0 + 5
)

// A/D Start Register (ADSR) fields.
const (
	ADSRreserved = 0x3F
	ADSRlads     = 0x40
	ADSRadsf     = 0x80
)

// RTCCR1 bits.
const (
	RTCCR1run = 0x80
	RTCCR1om  = 0x40 // 24-hour mode when set
	RTCCR1pm  = 0x20
	RTCCR1rst = 0x10
)

// RTC data register fields: BSY in the top bit, the BCD tens digit below
// it, the ones digit in the low nibble.
const (
	RTCbsy = 0x80
)

// Reset defaults written by Init.
const (
	resetTMWD    = 0xF0 // reserved high nibble reads as ones
	resetTCSRWD1 = 0xAE // write-inhibit bits and WDON set
	resetSSSR    = SSSRtdre
	resetSSR3    = SSR3tdre | SSR3tend
	resetADSR    = ADSRreserved
)
