package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/lms"
	"github.com/trezcool/lms/services/files"
)

var errExit = errors.New("exit requested")

type (
	shellDeps struct {
		Conf   *core.Config
		Logger core.Logger
		Svc    *lms.Service
		Files  *files.Manager
	}

	command struct {
		choice string
		title  string
		run    func(sh *shell) error
	}

	shell struct {
		shellDeps
		in       *bufio.Scanner
		out      io.Writer
		echo     bool // print every line read, for non-interactive input
		commands []command
	}
)

func newShell(deps shellDeps, in io.Reader, out io.Writer, echo bool) *shell {
	return &shell{
		shellDeps: deps,
		in:        bufio.NewScanner(in),
		out:       out,
		echo:      echo,
		commands: []command{
			{"1", "Add teacher", addTeacher},
			{"2", "Add course", addCourse},
			{"3", "Add student", addStudent},
			{"4", "Enroll student in course", enrollStudent},
			{"5", "Add grades for student", addGrades},
			{"6", "Save grades", saveGrades},
			{"7", "Show information", showInformation},
			{"8", "Save", saveState},
			{"9", "Load", loadState},
			{"10", "List files", listFiles},
			{"11", "Delete file", deleteFile},
			{"12", "Exit", func(*shell) error { return errExit }},
		},
	}
}

// run loops over the menu until Exit is chosen or the input ends.
func (sh *shell) run() error {
	for {
		sh.printMenu()
		choice, err := sh.ask("Your choice: ")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		cmd, ok := sh.command(core.CleanString(choice))
		if !ok {
			sh.println("Invalid choice!")
			continue
		}
		if err = cmd.run(sh); err != nil {
			switch errors.Cause(err) {
			case errExit, io.EOF:
				return nil
			}
			sh.Logger.Error(fmt.Sprintf("%s: %v", cmd.title, err), err)
			sh.printf("Error: %v\n", err)
		}
	}
}

func (sh *shell) command(choice string) (command, bool) {
	for _, cmd := range sh.commands {
		if cmd.choice == choice {
			return cmd, true
		}
	}
	return command{}, false
}

func (sh *shell) printMenu() {
	sh.printf("\n%s Menu:\n", sh.Conf.AppName)
	for _, cmd := range sh.commands {
		sh.printf("%s. %s\n", cmd.choice, cmd.title)
	}
}

func (sh *shell) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) println(args ...interface{}) {
	_, _ = fmt.Fprintln(sh.out, args...)
}

// ask prints the prompt and reads one line. io.EOF is returned once the input is exhausted.
func (sh *shell) ask(prompt string) (string, error) {
	sh.printf("%s", prompt)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		sh.println()
		return "", io.EOF
	}
	line := strings.TrimRight(sh.in.Text(), "\r")
	if sh.echo {
		sh.println(line)
	}
	return line, nil
}

// askNumber reads a 1-based position. Anything that is not an integer reads as 0, which no position matches.
func (sh *shell) askNumber(prompt string) (int, error) {
	line, err := sh.ask(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(core.CleanString(line))
	if err != nil {
		sh.Logger.Debug(fmt.Sprintf("not a number: %q", line))
		return 0, nil
	}
	return n, nil
}

// askFileName reads a file name, falling back to `def` when the answer is empty.
func (sh *shell) askFileName(prompt, def string) (string, error) {
	name, err := sh.ask(prompt)
	if err != nil {
		return "", err
	}
	if name = core.CleanString(name); name == "" {
		return def, nil
	}
	return name, nil
}
