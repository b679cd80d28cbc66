package main

import "time"

// durationSlice adapts a []time.Duration to github.com/grd/stat's
// Float64Slice interface, the same shape the teacher's main.go uses for
// engineLatencies/fetchLatencies/persistLatencies.
type durationSlice []time.Duration

func (d durationSlice) Get(i int) float64 { return float64(d[i]) }
func (d durationSlice) Len() int          { return len(d) }

const nanoToSeconds = 1e-9
