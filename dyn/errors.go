/*
 * errors.go, part of gophon
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

package dyn

import (
	"errors"
	"fmt"

	phon "github.com/rmera/gophon"
)

//Errors

const (
	NoMarker        = "Marker not found"
	WrongFormat     = "Wrong format in the dyn file"
	BadNumber       = "Unable to read number"
	IndexOutOfRange = "Atom index out of range"
	Duplicated      = "Index given twice"
	Truncated       = "File ends before the section is complete"
	OnlyOneZ        = "Only one of the effective charge blocks (E-U, U-E) was found"
	ReadError       = "Error reading file"
)

// FormatError is returned when a required marker, number or block is not found, or
// when a block doesn't have the expected size. It fullfills phon.ParseError.
type FormatError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	line     int    //1-based, 0 if unknown
	deco     []string
	err      error //the underlying error, if any
}

func newFormatError(message string, line int, err error, deco ...string) *FormatError {
	return &FormatError{message: message, line: line, err: err, deco: deco}
}

func (E *FormatError) Error() string {
	s := fmt.Sprintf("dyn file %s error at line %d: %s", E.filename, E.line, E.message)
	if E.err != nil {
		s = s + ": " + E.err.Error()
	}
	return s
}

func (E *FormatError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *FormatError) Unwrap() error { return E.err }

func (E *FormatError) FileName() string { return E.filename }

func (E *FormatError) Line() int { return E.line }

// Message returns the error message without location information.
func (E *FormatError) Message() string { return E.message }

func (E *FormatError) Critical() bool { return true }

// ConsistencyError is returned when two related blocks contradict each other, like
// a file with only one of the two effective charge blocks. It means
// that the file is corrupted or of an unsupported variant, not just incomplete.
type ConsistencyError struct {
	message  string
	filename string
	line     int
	deco     []string
}

func (E *ConsistencyError) Error() string {
	return fmt.Sprintf("dyn file %s inconsistent at line %d: %s", E.filename, E.line, E.message)
}

func (E *ConsistencyError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (E *ConsistencyError) FileName() string { return E.filename }

func (E *ConsistencyError) Line() int { return E.line }

func (E *ConsistencyError) Critical() bool { return true }

//lastSectionError implements phon.LastSectionError
type lastSectionError struct {
	deco     []string
	fileName string
	line     int
}

//lastSectionError does nothing
func (E *lastSectionError) NormalLastSectionTermination() {}

func (E *lastSectionError) FileName() string { return E.fileName }

func (E *lastSectionError) Error() string { return "No more sections" }

func (E *lastSectionError) Critical() bool { return false }

func (E *lastSectionError) Line() int { return E.line }

func (E *lastSectionError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastSectionError(filename string, line int, caller string) *lastSectionError {
	return &lastSectionError{fileName: filename, line: line, deco: []string{caller}}
}

// IsLast returns true if err only signals that all sections of a file have been read.
func IsLast(err error) bool {
	var l phon.LastSectionError
	return errors.As(err, &l)
}

//errDecorate adds caller to the trail of err, if err is a phon.Error.
//Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	var e phon.Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

//setFileName sets the file name on the error if it is one of ours.
func setFileName(err error, name string) error {
	var fe *FormatError
	var ce *ConsistencyError
	var le *lastSectionError
	switch {
	case errors.As(err, &fe):
		fe.filename = name
	case errors.As(err, &ce):
		ce.filename = name
	case errors.As(err, &le):
		le.fileName = name
	}
	return err
}
