package service

import "time"

// timeNow is swapped out in tests that exercise time-sensitive behaviour.
var timeNow = time.Now
