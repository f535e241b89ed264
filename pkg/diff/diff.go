// Package diff locates the first difference between two texts line by line.
//
// It is used to point at the offending line when an output mismatch is
// reported, the comparison itself is exact.
package diff

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EOF is reported as the line content when one side has fewer lines
const EOF = "<EOF>"

// Difference describes the first line where expected and actual differ
type Difference struct {
	Line     int
	Expected string
	Actual   string
}

func (d *Difference) Error() string {
	return fmt.Sprintf("at line %d,\nexpected: %v\nactual: %v", d.Line, d.Expected, d.Actual)
}

// Compare compares actual with expected.
// If they are the same, nil is returned, otherwise the returned error is
// either a *Difference or the read error of the underlying readers
func Compare(expected, actual io.Reader) error {
	expScan := bufio.NewScanner(expected)
	actScan := bufio.NewScanner(actual)
	expScan.Buffer(nil, maxLineSize)
	actScan.Buffer(nil, maxLineSize)

	for line := 1; ; line++ {
		exp, hasExp := scanLine(expScan)
		act, hasAct := scanLine(actScan)

		// EOF at the same time
		if !hasExp && !hasAct {
			break
		}
		if hasExp && hasAct && exp == act {
			continue
		}
		if !hasExp {
			exp = EOF
		}
		if !hasAct {
			act = EOF
		}
		return &Difference{Line: line, Expected: exp, Actual: act}
	}
	if err := expScan.Err(); err != nil {
		return err
	}
	return actScan.Err()
}

// Strings is the string version of Compare, it returns nil if the two
// strings are equal
func Strings(expected, actual string) *Difference {
	err := Compare(strings.NewReader(expected), strings.NewReader(actual))
	if d, ok := err.(*Difference); ok {
		return d
	}
	return nil
}

const maxLineSize = 16 << 20

func scanLine(sc *bufio.Scanner) (string, bool) {
	if sc.Scan() {
		return sc.Text(), true
	}
	return "", false
}
