package format

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkFormatSmall benchmarks a typical small file
func BenchmarkFormatSmall(b *testing.B) {
	source := "syntax=\"proto3\";\npackage users.v1;\nmessage User {\nstring name=1;\nint64 id=2;}\n"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Format(source)
	}
}

// BenchmarkFormatLarge benchmarks a file with many messages
func BenchmarkFormatLarge(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("syntax=\"proto3\";\npackage bench.v1;\n")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, "message Message%d {\nstring value=1;\nint64 count=2;}\n", i)
	}
	source := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Format(source)
	}
}
