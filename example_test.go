package bcollect_test

import (
	"errors"
	"fmt"

	"github.com/agbru/bcollect"
)

func ExampleCollectSlice() {
	outcomes := []bcollect.Outcome[struct{}]{
		bcollect.Ok(struct{}{}),
		bcollect.Fail[struct{}](errors.New("woops")),
		bcollect.Fail[struct{}](errors.New("woops again")),
	}

	_, err := bcollect.CollectSlice(outcomes)
	fmt.Println(err)
	// Output:
	// woops
	// woops again
}

// ExampleCollect shows the "map then collect" pattern: every name is checked
// and all the offending ones are reported together.
func ExampleCollect() {
	names := []string{"one", "two", "three", "four"}

	lengths, err := bcollect.Collect(
		bcollect.Apply(names, func(name string) (bcollect.Pair[string, int], error) {
			if len(name) < 4 {
				return bcollect.KV(name, len(name)), nil
			}
			return bcollect.Pair[string, int]{}, fmt.Errorf("name %q has %d characters", name, len(name))
		}),
		bcollect.Map[string, int](),
	)

	fmt.Println(lengths == nil)
	fmt.Println(err)
	// Output:
	// true
	// name "three" has 5 characters
	// name "four" has 4 characters
}

func ExampleCollectMap() {
	outcomes := []bcollect.Outcome[bcollect.Pair[int, int]]{
		bcollect.Ok(bcollect.KV(1, 10)),
		bcollect.Ok(bcollect.KV(2, 20)),
		bcollect.Ok(bcollect.KV(3, 30)),
	}

	m, err := bcollect.CollectMap(outcomes)
	fmt.Println(m, err)
	// Output:
	// map[1:10 2:20 3:30] <nil>
}
