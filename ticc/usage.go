package ticc

// Bucket is the usage category a linker section contributes to. The
// classification is closed: sections outside the table below never
// reach the totals.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketCode
	BucketConst
	BucketCinit
	BucketData
	BucketBss
	BucketStack
)

var sectionBuckets = map[string]Bucket{
	".text":   BucketCode,
	".const":  BucketConst,
	".rodata": BucketConst,
	".cinit":  BucketCinit,
	".data":   BucketData,
	".bss":    BucketBss,
	".stack":  BucketStack,
}

func classify(section string) Bucket { return sectionBuckets[section] }

// Usage holds the per-bucket byte totals of one build.
type Usage struct {
	Text  int64
	Const int64
	Cinit int64
	Data  int64
	Bss   int64
	Stack int64
}

// Aggregate folds segment entries into bucket totals. The constant
// sections accumulate (.const and .rodata rows are summed); the
// singleton sections are assigned.
func Aggregate(entries []SegmentEntry) Usage {
	var u Usage
	for _, e := range entries {
		switch classify(e.Section) {
		case BucketCode:
			u.Text = e.Size
		case BucketConst:
			u.Const += e.Size
		case BucketCinit:
			u.Cinit = e.Size
		case BucketData:
			u.Data = e.Size
		case BucketBss:
			u.Bss = e.Size
		case BucketStack:
			u.Stack = e.Size
		}
	}
	return u
}

// FlashUsed counts code, constants, init tables and the flash load
// image of .data. .data lands in both totals: its initial image is
// stored in flash and copied to RAM by the startup code.
func (u Usage) FlashUsed() int64 { return u.Text + u.Const + u.Cinit + u.Data }

// RAMUsed counts initialized data, zero-initialized data and the
// reserved stack.
func (u Usage) RAMUsed() int64 { return u.Data + u.Bss + u.Stack }

// Percent is the integer floor of used*100/capacity. Values above
// 100 are reported as is.
func Percent(used, capacity int64) int { return int(used * 100 / capacity) }
