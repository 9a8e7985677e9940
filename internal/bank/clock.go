package bank

import "time"

// Clock supplies the current time for monthly counter resets and transaction
// timestamps. Production code uses time.Now; tests substitute a fixed clock
// to drive month boundaries deterministically.
type Clock func() time.Time
