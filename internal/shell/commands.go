package shell

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const helpText = `.help            Print this help message
.exit            Exit the shell
.env [yaml]      Print current environments
.reset           Clear every variable
.save [name]     Save the variables to the session store
.load <id>       Restore the variables of a stored session
.sessions        List stored sessions`

// command runs a dot command and reports whether the shell should exit
func (s *Shell) command(ctx context.Context, text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		fmt.Fprintf(s.out, "Invalid shell keyword: %s\n", text)
		return false
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "exit":
		fmt.Fprintln(s.out, farewell)
		return true
	case "env":
		s.printEnv(args)
	case "reset":
		s.session.Reset()
		s.printInfo("Environment cleared.")
	case "save":
		s.save(ctx, strings.Join(args, " "))
	case "load":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: .load <session-id>")
			return false
		}
		s.load(ctx, args[0])
	case "sessions":
		s.listSessions(ctx)
	default:
		fmt.Fprintf(s.out, "Invalid shell keyword: %s\n", name)
	}
	return false
}

func (s *Shell) printEnv(args []string) {
	if len(args) > 0 && args[0] == "yaml" {
		data, err := yaml.Marshal(s.session.Env().Snapshot())
		if err != nil {
			s.printError(err)
			return
		}
		fmt.Fprint(s.out, string(data))
		return
	}
	fmt.Fprint(s.out, s.session.Env().String())
}

func (s *Shell) save(ctx context.Context, name string) {
	if !s.requireStore() {
		return
	}
	if s.sessionID == "" {
		if err := s.ensureSession(ctx, name); err != nil {
			s.printError(err)
			return
		}
	} else if name != "" {
		if err := s.store.RenameSession(ctx, s.sessionID, name); err != nil {
			s.printError(err)
			return
		}
	}
	if err := s.store.SaveSnapshot(ctx, s.sessionID, s.session.Env().Snapshot()); err != nil {
		s.printError(err)
		return
	}
	s.printInfo("Saved session %s.", s.sessionID)
}

func (s *Shell) load(ctx context.Context, id string) {
	if !s.requireStore() {
		return
	}
	bindings, err := s.store.LoadSnapshot(ctx, id)
	if err != nil {
		s.printError(err)
		return
	}
	s.session.Env().Restore(bindings)
	s.sessionID = id
	s.printInfo("Loaded %d variables from session %s.", len(bindings), id)
}

func (s *Shell) listSessions(ctx context.Context) {
	if !s.requireStore() {
		return
	}
	sessions, err := s.store.ListSessions(ctx, 20)
	if err != nil {
		s.printError(err)
		return
	}
	if len(sessions) == 0 {
		s.printInfo("No stored sessions.")
		return
	}
	for _, session := range sessions {
		name := session.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(s.out, "%s  %-12s %3d vars  %s\n",
			session.ID, name, session.Bindings, session.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (s *Shell) requireStore() bool {
	if s.store == nil {
		fmt.Fprintln(s.out, "No session store configured.")
		return false
	}
	return true
}
