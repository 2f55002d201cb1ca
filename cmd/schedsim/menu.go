package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adiu19/schedsim/scheduler"
)

// menu asks for whatever the flags and config left open.
type menu struct {
	in  *bufio.Scanner
	out io.Writer
}

func newMenu(in io.Reader, out io.Writer) *menu {
	return &menu{in: bufio.NewScanner(in), out: out}
}

func (m *menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// choosePolicy prints the algorithm menu and parses the answer.
func (m *menu) choosePolicy() (scheduler.Policy, error) {
	fmt.Fprintln(m.out, "Select a scheduling algorithm:")
	fmt.Fprintln(m.out, "1. First-Come, First-Served (FCFS)")
	fmt.Fprintln(m.out, "2. Shortest Job Next (SJN)")
	fmt.Fprintln(m.out, "3. Priority Scheduling")
	fmt.Fprintln(m.out, "4. Round Robin")
	fmt.Fprint(m.out, "Enter your choice: ")

	line, err := m.readLine()
	if err != nil {
		return 0, fmt.Errorf("reading choice: %w", err)
	}
	return scheduler.ParsePolicy(line)
}

// chooseQuantum asks for the Round Robin time quantum.
func (m *menu) chooseQuantum() (int, error) {
	fmt.Fprint(m.out, "Enter the time quantum for Round Robin: ")
	line, err := m.readLine()
	if err != nil {
		return 0, fmt.Errorf("reading quantum: %w", err)
	}
	q, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("quantum %q is not a number", line)
	}
	return q, nil
}
