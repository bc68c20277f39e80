package services

import (
	"context"
	"sync"

	"github.com/vvka-141/autocheck/pkg/autocheck"
)

type fakeApprover struct {
	answers   []bool
	err       error
	questions []string
}

func (f *fakeApprover) RequestApproval(_ context.Context, question string) (bool, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return false, f.err
	}
	if len(f.answers) == 0 {
		return false, nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

type fakeRunner struct {
	mu       sync.Mutex
	outcomes map[string]autocheck.ToolOutcome
	commands []autocheck.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd autocheck.Command) autocheck.ToolOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	if o, ok := f.outcomes[cmd.Name]; ok {
		return o
	}
	return autocheck.ToolOutcome{Command: cmd.Bin + " " + cmd.Name, Success: true}
}

func (f *fakeRunner) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, c := range f.commands {
		names = append(names, c.Name)
	}
	return names
}

type fakeGit struct {
	summary autocheck.GitSummary
	err     error
	calls   int
}

func (f *fakeGit) Inspect(_ context.Context, _ string, recent int) (autocheck.GitSummary, error) {
	f.calls++
	s := f.summary
	if len(s.RecentSubjects) > recent {
		s.RecentSubjects = s.RecentSubjects[:recent]
	}
	return s, f.err
}
