package registrar

import (
	"fmt"
)

// runSafely executes fn and converts panics into returned errors tagged with scope.
// It guards every host-invoked callback so one faulty handler cannot take down the plugin.
func runSafely(scope string, fn func() error) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		err = fmt.Errorf("%s: panic recovered: %v", scope, recovered)
	}()

	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", scope, err)
	}

	return nil
}
