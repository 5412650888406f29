package main

import "sync/atomic"

var n int32

func main() {
	for i := 0; i < 10; i++ {
		for j := 0; j < i; j++ {
			atomic.AddInt32(&n, 1)
		}
	}
	println(count(3))
}

func count(k int) int {
	s := 0
	for i := 0; i < k; i++ {
		s += i
	}
	return s
}

func unused() {
	for {
		println(atomic.LoadInt32(&n))
	}
}
