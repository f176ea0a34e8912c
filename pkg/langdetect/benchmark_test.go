package langdetect

import (
	"testing"
)

func BenchmarkDetectFileByExtension(b *testing.B) {
	code := []byte("fun main() {\n    println(\"Hello, World!\")\n}\n")
	b.ResetTimer()
	for range b.N {
		DetectFile("src/Main.kt", code)
	}
}

func BenchmarkDetectFileByShebang(b *testing.B) {
	code := []byte("#!/usr/bin/env python3\nprint('hello')\n")
	b.ResetTimer()
	for range b.N {
		DetectFile("bin/tool", code)
	}
}
