package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/go-symcore/symcore/cnf"
)

// WriteDimacs writes res in the standard DIMACS CNF text format:
// a "p cnf <vars> <clauses>" header followed by one line per clause,
// each a space-separated list of signed literals terminated by 0.
// maxVar is the highest CNF variable number in use (Manager's
// MaxCnfVariable after the conversion that produced res); it is
// accepted rather than recomputed so the header is correct even for a
// clause set that never mentions the highest-numbered variable.
func WriteDimacs(w io.Writer, res cnf.Result, maxVar int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", maxVar, len(res.Clauses)); err != nil {
		return err
	}
	for _, c := range res.Clauses {
		if err := writeClause(bw, c); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeClause(bw *bufio.Writer, c cnf.Clause) error {
	for _, lit := range c {
		if _, err := bw.WriteString(strconv.Itoa(lit)); err != nil {
			return err
		}
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("0\n"); err != nil {
		return err
	}
	return nil
}
