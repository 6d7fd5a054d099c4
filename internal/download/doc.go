package download

// Package download wraps the external score downloader (dl-librescore, run via
// npx). It builds the command line, runs it as a subprocess and reports a
// non-zero exit together with the tool's stderr.
