package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sklowrylaw/website/pkg/domain/intake/bridge"
	"github.com/sklowrylaw/website/pkg/domain/intake/localstore"
)

type failingSubmitter struct{}

func (failingSubmitter) SubmitConsultation(context.Context, map[string]string) (string, error) {
	return "", errors.New("connection refused")
}

func TestRunChat(t *testing.T) {
	t.Run("a full conversation is saved locally", func(t *testing.T) {
		dir := t.TempDir()
		in := strings.NewReader(strings.Join([]string{
			"Pat Example",
			"pat@example.com",
			"940 555 1234",
			"2", // Probate Administration
			"1", // As soon as possible
			"My mother passed away last month.",
		}, "\n") + "\n")
		out := &strings.Builder{}

		store := localstore.New(dir)
		br := bridge.New(store, nil)
		if err := runChat(context.Background(), in, out, &strings.Builder{}, br); err != nil {
			t.Fatal(err)
		}

		entries, err := store.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 saved response, got %d", len(entries))
		}
		data := entries[0].Data
		if data["serviceType"] != "Probate Administration" {
			t.Errorf("serviceType = %q", data["serviceType"])
		}
		if data["phone"] != "(940) 555-1234" {
			t.Errorf("phone = %q", data["phone"])
		}

		printed := out.String()
		for _, want := range []string{
			"1. Will & Estate Planning",
			"Name: Pat Example",
			bridge.OfficeEmail,
		} {
			if !strings.Contains(printed, want) {
				t.Errorf("output is missing %q", want)
			}
		}
	})

	t.Run("rejected input re-prompts without losing progress", func(t *testing.T) {
		dir := t.TempDir()
		in := strings.NewReader(strings.Join([]string{
			"Pat Example",
			"not-an-email",
			"pat@example.com",
			"555", // too short for a phone number
			"9405551234",
			"Probate Administration",
			"As soon as possible",
			"My mother passed away last month.",
		}, "\n") + "\n")
		out := &strings.Builder{}

		store := localstore.New(dir)
		if err := runChat(context.Background(), in, out, &strings.Builder{}, bridge.New(store, nil)); err != nil {
			t.Fatal(err)
		}

		printed := out.String()
		for _, want := range []string{
			"Please enter a valid email address.",
			"Please enter a valid phone number with at least 10 digits.",
		} {
			if !strings.Contains(printed, want) {
				t.Errorf("output is missing %q", want)
			}
		}

		entries, err := store.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Data["email"] != "pat@example.com" {
			t.Errorf("unexpected saved responses: %v", entries)
		}
	})

	t.Run("a failed submission is reported on stderr, not to the visitor", func(t *testing.T) {
		in := strings.NewReader(strings.Join([]string{
			"Pat Example",
			"pat@example.com",
			"9405551234",
			"Probate Administration",
			"As soon as possible",
			"My mother passed away last month.",
		}, "\n") + "\n")
		out := &strings.Builder{}
		errOut := &strings.Builder{}

		store := localstore.New(t.TempDir())
		br := bridge.New(store, &failingSubmitter{})
		if err := runChat(context.Background(), in, out, errOut, br); err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(errOut.String(), "warning:") ||
			!strings.Contains(errOut.String(), "connection refused") {
			t.Errorf("stderr is missing the submission failure: %q", errOut.String())
		}
		if strings.Contains(out.String(), "connection refused") {
			t.Errorf("the raw error leaked into the visitor's output: %q", out.String())
		}
		if !strings.Contains(out.String(), bridge.OfficeEmail) {
			t.Errorf("output is missing the fallback contacts: %q", out.String())
		}
	})

	t.Run("abandoning the conversation saves nothing", func(t *testing.T) {
		dir := t.TempDir()
		in := strings.NewReader("Pat Example\n")
		out := &strings.Builder{}

		store := localstore.New(dir)
		if err := runChat(context.Background(), in, out, &strings.Builder{}, bridge.New(store, nil)); err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(out.String(), "nothing was sent") {
			t.Errorf("no cancellation notice in output")
		}
		entries, err := store.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("unexpected saved responses: %v", entries)
		}
	})
}

func TestResolveChoice(t *testing.T) {
	choices := []string{"first", "second"}
	for name, testcase := range map[string]struct {
		input string
		want  string
	}{
		"number picks the choice": {input: "2", want: "second"},
		"number with spaces":      {input: " 1 ", want: "first"},
		"out of range is verbatim": {
			input: "3", want: "3",
		},
		"free text is verbatim": {input: "something else", want: "something else"},
	} {
		t.Run(name, func(t *testing.T) {
			if got := resolveChoice(choices, testcase.input); got != testcase.want {
				t.Errorf("resolveChoice(%q) = %q, want %q", testcase.input, got, testcase.want)
			}
		})
	}
}
