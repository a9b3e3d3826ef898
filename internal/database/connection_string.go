package database

import (
	"fmt"
	"net/url"
	"strings"
)

// buildConnectionString generates a modernc.org/sqlite DSN from options.
// PRAGMAs travel as _pragma parameters so the driver runs them on every new connection.
func (opts *SQLiteOptions) buildConnectionString() string {
	params := url.Values{}

	if opts.Mode != "" {
		params.Set("mode", opts.Mode)
	}
	if opts.Cache != "" {
		params.Set("cache", string(opts.Cache))
	}
	if opts.Immutable {
		params.Set("immutable", "1")
	}
	if opts.TxLock != "" {
		params.Set("_txlock", opts.TxLock)
	}
	for _, pragma := range opts.pragmas() {
		params.Add("_pragma", pragma)
	}

	connStr := opts.Path
	if !strings.HasPrefix(connStr, "file:") {
		connStr = "file:" + connStr
	}
	if encoded := params.Encode(); encoded != "" {
		connStr += "?" + encoded
	}

	return connStr
}

// pragmas lists the PRAGMA calls for the options, busy_timeout first so that
// the remaining ones already wait on a locked database.
func (opts *SQLiteOptions) pragmas() []string {
	var pragmas []string

	if opts.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout))
	}
	foreignKeys := 0
	if opts.ForeignKeys {
		foreignKeys = 1
	}
	pragmas = append(pragmas, fmt.Sprintf("foreign_keys(%d)", foreignKeys))
	if opts.Journal != "" {
		pragmas = append(pragmas, fmt.Sprintf("journal_mode(%s)", opts.Journal))
	}
	if opts.Synchronous != "" {
		pragmas = append(pragmas, fmt.Sprintf("synchronous(%s)", opts.Synchronous))
	}
	if opts.CacheSize != 0 {
		pragmas = append(pragmas, fmt.Sprintf("cache_size(%d)", opts.CacheSize))
	}

	return pragmas
}
