package abicafe

// DefaultTestNames is the fixed manifest catalog a full run iterates by
// default, mirroring the static TESTS list of the original implementation
// this system was distilled from. Overridable at the CLI via -test.
var DefaultTestNames = []string{
	"opaque_example",
	"structs",
	"by_ref",
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
	"ptr", "bool",
	"ui128",
}
