package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo returns a ClientInfo describing this process
// name is the binary ("spedicija-api"), tag an optional deploy label
func BuildClientInfo(name, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	info := clickhouse.ClientInfo{}
	add := func(n, v string) {
		if v = strings.TrimSpace(v); v != "" {
			info.Products = append(info.Products, struct{ Name, Version string }{Name: n, Version: v})
		}
	}
	add("spedicija", name)
	add("tag", tag)
	add("go", runtime.Version())
	add("commit", vcsShortSHA())
	add("host", host)
	return info
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
