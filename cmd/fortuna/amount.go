package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var amountPattern = regexp.MustCompile(`^([1-9][0-9]*)([KMG])?$`)

var suffixMultipliers = map[string]uint64{
	"":  1,
	"K": 1024,
	"M": 1024 * 1024,
	"G": 1024 * 1024 * 1024,
}

// parseArgs returns the amount of bytes to write. If no amount is given, limited is false.
func parseArgs(args []string) (limit uint64, limited bool, err error) {
	switch len(args) {
	case 0:
		return 0, false, nil
	case 1:
		limit, err = parseAmount(args[0])
		if err != nil {
			return 0, false, err
		}
		return limit, true, nil
	default:
		return 0, false, fmt.Errorf("unrecognized parameters %q", args)
	}
}

// parseAmount parses a byte count with an optional K, M or G suffix, which are multiples of 1024.
func parseAmount(amount string) (uint64, error) {
	matches := amountPattern.FindStringSubmatch(amount)
	if matches == nil {
		return 0, fmt.Errorf("unrecognized amount %s", amount)
	}

	n, err := strconv.ParseUint(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %s is too large", amount)
	}
	multiplier := suffixMultipliers[matches[2]]
	if n > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("amount %s is too large", amount)
	}

	return n * multiplier, nil
}
