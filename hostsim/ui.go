// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hostsim

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleUI implements hostio.UserInterface over a terminal, standing in
// for the LCD/button panel: a command prompt asks the operator to approve
// or deny, and a displayed OTP is printed to the same terminal rather than
// a physical screen.
type ConsoleUI struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleUI builds a ConsoleUI reading prompts from in and writing
// prompts to out.
func NewConsoleUI(in io.Reader, out io.Writer) *ConsoleUI {
	return &ConsoleUI{in: bufio.NewReader(in), out: out}
}

// UserDenied prompts the operator and reports true unless they answer y.
func (c *ConsoleUI) UserDenied(cmd string) bool {
	fmt.Fprintf(c.out, "approve %s? [y/N] ", cmd)
	line, _ := c.in.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line)) != "y"
}

// DisplayOTP prints the challenge code the operator must relay back.
func (c *ConsoleUI) DisplayOTP(cmd, otp string) {
	fmt.Fprintf(c.out, "otp for %s: %s\n", cmd, otp)
}

// ClearOTP is a no-op on a scrollback terminal; there is nothing to erase.
func (c *ConsoleUI) ClearOTP() {}

// GetString prompts for a line of input, used for on-device password
// entry simulation.
func (c *ConsoleUI) GetString(set, spec int) (string, error) {
	fmt.Fprintf(c.out, "enter value (set=%d spec=%d): ", set, spec)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AutoApproveUI implements hostio.UserInterface by approving everything
// without operator interaction, for scripted integration tests and
// demos where a human isn't available to answer a prompt.
type AutoApproveUI struct {
	// NextString is returned by GetString and then cleared, letting a
	// caller script a single scripted password/PIN entry.
	NextString string
}

func (a *AutoApproveUI) UserDenied(cmd string) bool    { return false }
func (a *AutoApproveUI) DisplayOTP(cmd, otp string)    {}
func (a *AutoApproveUI) ClearOTP()                     {}
func (a *AutoApproveUI) GetString(set, spec int) (string, error) {
	s := a.NextString
	a.NextString = ""
	return s, nil
}
