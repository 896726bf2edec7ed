package utils

// F64Ptr returns a pointer to the given float64 value.
func F64Ptr(v float64) *float64 { return &v }

// U64Ptr returns a pointer to the given uint64 value.
func U64Ptr(v uint64) *uint64 { return &v }

// U32Ptr returns a pointer to the given uint32 value.
func U32Ptr(v uint32) *uint32 { return &v }
