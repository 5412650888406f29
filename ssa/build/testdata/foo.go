package main

func foo(n int) {
	for j := 0; j < n; j++ {
		bar()
	}
}
