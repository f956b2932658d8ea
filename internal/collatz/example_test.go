package collatz_test

import (
	"fmt"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/collatz"
)

func ExampleStoppingTime() {
	n, _ := bignum.Default().Parse("27")
	fmt.Println(collatz.StoppingTime(n))
	// Output: 111
}

func ExampleRunRange() {
	r := collatz.Range{Start: bignum.Default().FromUint64(1), Count: 6}
	res := collatz.RunRange(r, collatz.WorkerOptions{CountSteps: true})
	fmt.Println(res.Verified, res.MaxSteps, res.MaxStepsAt)
	// Output: 6 8 6
}
