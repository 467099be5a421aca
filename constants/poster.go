package constants

// ProfileKeyCaseID is the one profile field every mapping must produce. It
// names the cache entry and the generated poster files.
const ProfileKeyCaseID = "case_id"

// PosterInfix separates the case identifier from the channel name in
// generated poster file names.
const PosterInfix = "-poster-"

// File suffixes for the artifacts one poster run produces.
const (
	SuffixSVG   = ".svg"
	SuffixPNG   = ".png"
	SuffixPDF   = ".pdf"
	SuffixCache = ".json"
)
