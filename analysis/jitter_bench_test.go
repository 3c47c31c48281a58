package analysis

import "testing"

func BenchmarkJitterRMS(b *testing.B) {
	x := slowControlWithNoise(22050*4, 0.01, 5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := JitterRMS(x, DefaultFFTSize); err != nil {
			b.Fatal(err)
		}
	}
}
