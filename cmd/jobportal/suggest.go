package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/portal"
	"github.com/jonathan/job-portal/internal/schemas"
	"github.com/jonathan/job-portal/internal/suggest"
)

var (
	suggestEmail  string
	suggestWait   time.Duration
	suggestDryRun bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Fill in a resume with word completions",
	Long: `Walk through the resume form one field at a time. After each line you type,
the word before the end of the line is completed from the prediction service.

  <Tab><Enter>  accept the offered completion
  <Enter>       keep the field as it is and move on
  anything else replaces the field text`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestEmail, "email", "", "Account email; replaces the email typed into the form")
	suggestCmd.Flags().DurationVar(&suggestWait, "wait", 2*time.Second, "How long to wait for a completion after the debounce window")
	suggestCmd.Flags().BoolVar(&suggestDryRun, "dry-run", false, "Print the resume instead of saving it")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	client := e.client()

	s := newSession(cmd.InOrStdin(), cmd.OutOrStdout(), client, e.cfg.Debounce()+suggestWait,
		suggest.WithDebounce(e.cfg.Debounce()),
		suggest.WithLogger(e.logger))
	defer s.Close()

	if err := s.Run(cmd.Context()); err != nil {
		return err
	}

	resume := s.form.Resume(suggestEmail)
	doc, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}
	if err := schemas.ValidateResume(doc); err != nil {
		return fmt.Errorf("resume is incomplete: %w", err)
	}
	if suggestDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), string(doc))
		return nil
	}

	saved, err := client.CreateResume(cmd.Context(), &resume)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Resume saved for %s\n", saved.Email)
	return nil
}

// session drives a ResumeForm from line-oriented terminal input.
type session struct {
	in      *bufio.Scanner
	out     io.Writer
	form    *suggest.ResumeForm
	wait    time.Duration
	updates chan suggest.Field
}

func newSession(in io.Reader, out io.Writer, p suggest.Predictor, wait time.Duration, opts ...suggest.Option) *session {
	s := &session{
		in:      bufio.NewScanner(in),
		out:     out,
		wait:    wait,
		updates: make(chan suggest.Field, 16),
	}
	opts = append(opts, suggest.WithOnChange(func(f suggest.Field) {
		select {
		case s.updates <- f:
		default:
		}
	}))
	s.form = suggest.NewResumeForm(suggest.NewEngine(p, opts...))
	return s
}

// Close releases the engine.
func (s *session) Close() {
	s.form.Engine().Close()
}

var errInputClosed = errors.New("input closed")

func (s *session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// Run prompts for every field. End of input finishes the form early.
func (s *session) Run(ctx context.Context) error {
	for _, name := range suggest.PersonalFields {
		if err := s.fill(ctx, suggest.Personal(name)); err != nil {
			return ignoreClosed(err)
		}
	}
	for _, name := range suggest.EducationFields {
		if err := s.fill(ctx, suggest.Education(name)); err != nil {
			return ignoreClosed(err)
		}
	}
	for i := 0; ; i = s.form.AddExperience() {
		for _, name := range suggest.ExperienceFields {
			if err := s.fill(ctx, suggest.Experience(i, name)); err != nil {
				return ignoreClosed(err)
			}
		}
		more, err := s.experienceMenu()
		if err != nil {
			return ignoreClosed(err)
		}
		if !more {
			return nil
		}
	}
}

// experienceMenu asks what to do after an experience entry. It reports
// whether another entry should be filled in.
func (s *session) experienceMenu() (bool, error) {
	for {
		fmt.Fprintf(s.out, "Experience entries: %d. [a]dd another, [r]emove the last, Enter to finish: ", s.form.ExperienceCount())
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a", "y":
			return true, nil
		case "r":
			if err := s.form.RemoveExperience(s.form.ExperienceCount() - 1); err != nil {
				fmt.Fprintf(s.out, "  %v\n", err)
			} else {
				fmt.Fprintln(s.out, "  removed")
			}
		default:
			return false, nil
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

// fill edits one field until the user moves on.
func (s *session) fill(ctx context.Context, key suggest.FieldKey) error {
	engine := s.form.Engine()
	engine.Focus(key)
	defer engine.Blur()

	fmt.Fprintf(s.out, "%s: ", key)
	line, err := s.readLine()
	if err != nil {
		return err
	}
	for {
		if line == "" {
			return nil
		}
		s.drain()
		if line == "\t" {
			if !engine.KeyDown(key, suggest.AcceptKey) {
				return nil
			}
		} else {
			engine.Edit(key, line, len([]rune(line)))
		}
		s.drain()

		suggestion, err := s.awaitSuggestion(ctx, key)
		if err != nil {
			return err
		}
		if suggestion == "" {
			fmt.Fprintf(s.out, "  = %s\n", engine.Value(key))
		} else {
			fmt.Fprintf(s.out, "  = %s  [Tab: %s]\n", engine.Value(key), suggestion)
		}

		fmt.Fprintf(s.out, "%s: ", key)
		if line, err = s.readLine(); err != nil {
			return err
		}
	}
}

// drain discards queued change notifications.
func (s *session) drain() {
	for {
		select {
		case <-s.updates:
		default:
			return
		}
	}
}

// awaitSuggestion waits up to s.wait for the prediction result of key and
// returns the suggestion then visible.
func (s *session) awaitSuggestion(ctx context.Context, key suggest.FieldKey) (string, error) {
	timer := time.NewTimer(s.wait)
	defer timer.Stop()
	for {
		select {
		case f := <-s.updates:
			if f.Key == key {
				return s.form.Engine().Suggestion(key), nil
			}
		case <-timer.C:
			return s.form.Engine().Suggestion(key), nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

var _ suggest.Predictor = (*portal.Client)(nil)
