package exepack

// HeaderReserved is the fixed byte budget for the stub script at the start of
// a packed file. It is chosen generously above the largest rendered stub so
// the decompressor and payload live at offsets known without parsing, which
// keeps the file sliceable by dd/tail alone.
const HeaderReserved = 4096

// Layout is the byte layout of a packed file:
//
//	[stub, zero-padded to HeaderReserved][decompressor blob][compressed payload]
type Layout struct {
	HeaderReserved     int
	DecompressorOffset int
	DecompressorSize   int
	PayloadOffset      int
}

// PlanLayout computes the packed-file layout for a reserved header size and
// a decompressor blob size (zero when the stub will use a system codec).
// Pure arithmetic; cannot fail.
func PlanLayout(headerReserved, decompressorSize int) Layout {
	return Layout{
		HeaderReserved:     headerReserved,
		DecompressorOffset: headerReserved,
		DecompressorSize:   decompressorSize,
		PayloadOffset:      headerReserved + decompressorSize,
	}
}
