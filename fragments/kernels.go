package fragments

import (
	"math"
	"math/bits"
	"runtime"
)

var kernels = map[string]func(){
	"benchmark_fragment0": func() { runtime.KeepAlive(emptyLoop()) },
	"benchmark_fragment1": func() { runtime.KeepAlive(binarySearch(40)) },
	"benchmark_fragment2": func() { runtime.KeepAlive(kernighanBitCount(0xF0F0F0F0)) },
	"benchmark_fragment3": func() { runtime.KeepAlive(tableBitCount(0x123456789ABCDEF0)) },
	"benchmark_fragment4": func() { runtime.KeepAlive(bitonicChecksum()) },
	"benchmark_fragment5": func() { runtime.KeepAlive(bubbleChecksum()) },
	"benchmark_fragment6": func() { runtime.KeepAlive(countNegative()) },
	"benchmark_fragment7": func() { runtime.KeepAlive(dijkstraChecksum()) },
	"benchmark_fragment8": func() { runtime.KeepAlive(matrixChecksum()) },
}

func emptyLoop() int {
	sum := 0
	for i := range 10 {
		sum += i
	}
	return sum
}

// binarySearch looks key up in {0, 10, ..., 140} and returns the stored
// value, or -1.
func binarySearch(key int) int {
	type entry struct{ key, value int }
	var data [15]entry
	for i := range data {
		data[i] = entry{key: i * 10, value: i + 100}
	}

	low, up := 0, len(data)-1
	for low <= up {
		mid := (low + up) >> 1
		switch {
		case data[mid].key == key:
			return data[mid].value
		case data[mid].key > key:
			up = mid - 1
		default:
			low = mid + 1
		}
	}
	return -1
}

func kernighanBitCount(x uint32) int {
	count := 0
	for x != 0 {
		x &= x - 1
		count++
	}
	return count
}

var byteBits = func() (t [256]int) {
	for i := range t {
		t[i] = bits.OnesCount8(uint8(i))
	}
	return t
}()

func tableBitCount(x uint64) int {
	total := 0
	for x != 0 {
		total += byteBits[x&0xFF]
		x >>= 8
	}
	return total
}

func bitonicChecksum() int {
	var a [32]int
	for i := range a {
		a[i] = (31 - i) * 3 % 1024
	}
	bitonicSort(a[:], 0, len(a), true)
	return a[0] + a[21] + a[31]
}

func bitonicSort(a []int, lo, n int, ascending bool) {
	if n <= 1 {
		return
	}
	k := n / 2
	bitonicSort(a, lo, k, true)
	bitonicSort(a, lo+k, k, false)
	bitonicMerge(a, lo, n, ascending)
}

func bitonicMerge(a []int, lo, n int, ascending bool) {
	if n <= 1 {
		return
	}
	k := n / 2
	for i := lo; i < lo+k; i++ {
		if ascending == (a[i] > a[i+k]) {
			a[i], a[i+k] = a[i+k], a[i]
		}
	}
	bitonicMerge(a, lo, k, ascending)
	bitonicMerge(a, lo+k, k, ascending)
}

func bubbleChecksum() int {
	var a [100]int
	for i := range a {
		a[i] = 100 - i
	}

	for i := 0; i < len(a)-1; i++ {
		sorted := true
		for j := 0; j < len(a)-1-i; j++ {
			if a[j] > a[j+1] {
				a[j], a[j+1] = a[j+1], a[j]
				sorted = false
			}
		}
		if sorted {
			break
		}
	}
	return a[0] + a[99] + a[42]
}

func countNegative() int {
	const size = 20
	var m [size][size]int
	for i := range size {
		for j := range size {
			m[i][j] = (i - j) * 10
		}
	}

	var pTotal, pCount, nTotal, nCount int
	for i := range size {
		for j := range size {
			if v := m[i][j]; v >= 0 {
				pTotal += v
				pCount++
			} else {
				nTotal += v
				nCount++
			}
		}
	}
	return pTotal + pCount + nTotal + nCount
}

var dijkstraGraph = [6][6]int{
	{0, 7, 9, 0, 0, 14},
	{7, 0, 10, 15, 0, 0},
	{9, 10, 0, 11, 0, 2},
	{0, 15, 11, 0, 6, 0},
	{0, 0, 0, 6, 0, 9},
	{14, 0, 2, 0, 9, 0},
}

// dijkstraChecksum sums the shortest distances from vertex 0.
func dijkstraChecksum() int {
	const v = len(dijkstraGraph)
	var dist [v]int
	var visited [v]bool
	for i := range dist {
		dist[i] = math.MaxInt
	}
	dist[0] = 0

	for range v - 1 {
		u, best := -1, math.MaxInt
		for i := range v {
			if !visited[i] && dist[i] <= best {
				u, best = i, dist[i]
			}
		}
		if u == -1 {
			break
		}
		visited[u] = true

		for i := range v {
			w := dijkstraGraph[u][i]
			if !visited[i] && w != 0 && dist[u] != math.MaxInt && dist[u]+w < dist[i] {
				dist[i] = dist[u] + w
			}
		}
	}

	sum := 0
	for _, d := range dist {
		sum += d
	}
	return sum
}

// matrixChecksum multiplies two 10x10 matrices (B read row-major as its
// transpose) and sums the product.
func matrixChecksum() int {
	var a, b, c [100]int
	for i := range a {
		a[i] = i % 5
		b[i] = (i + 2) % 5
	}

	for k := range 10 {
		for i := range 10 {
			s := 0
			for j := range 10 {
				s += a[i*10+j] * b[k*10+j]
			}
			c[i*10+k] = s
		}
	}

	sum := 0
	for _, x := range c {
		sum += x
	}
	return sum
}
