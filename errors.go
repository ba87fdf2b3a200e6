package flac

import "github.com/artemist-go/muflac/internal/bits"

// Error is the single failure type returned by every parsing operation in
// this module. It is defined in internal/bits (the lowest-level package that
// needs to construct one) and aliased here so callers of the public API
// never need to import an internal package to inspect a failure's Kind.
type Error = bits.Error

// Kind classifies why a parsing operation failed.
type Kind = bits.Kind

// The kinds of parse failure this module reports.
const (
	KindIO       = bits.KindIO
	KindContent  = bits.KindContent
	KindReserved = bits.KindReserved
	KindUTF8     = bits.KindUTF8
	KindParseInt = bits.KindParseInt
	KindTooLong  = bits.KindTooLong
)
