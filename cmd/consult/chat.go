package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sklowrylaw/website/pkg/domain/intake/bridge"
	"github.com/sklowrylaw/website/pkg/domain/intake/engine"
	"github.com/sklowrylaw/website/pkg/domain/intake/script"
)

func chatCmd(server *string, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Answer the consultation questions interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(
				cmd.Context(),
				cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				newBridge(*server, *dataDir),
			)
		},
	}
}

func runChat(ctx context.Context, in io.Reader, out io.Writer, errOut io.Writer, br *bridge.Bridge) error {
	e, err := engine.New(script.Consultation())
	if err != nil {
		return err
	}

	st := engine.NewState()
	res := e.Start()
	printPrompt(out, res)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		input := resolveChoice(res.Choices, scanner.Text())

		st, res = e.Submit(st, input)
		if res.Done {
			break
		}
		if res.ErrorText != "" {
			fmt.Fprintln(out, res.ErrorText)
			fmt.Fprintln(out)
			continue
		}
		printPrompt(out, res)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !res.Done {
		fmt.Fprintln(out, "Conversation cancelled; nothing was sent.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Here is what you told me:")
	fmt.Fprintln(out, res.Summary)
	fmt.Fprintln(out)

	outcome := br.Finalize(ctx, st.Answers)
	if outcome.SaveError != nil {
		fmt.Fprintln(errOut, "warning:", outcome.SaveError)
	}
	if outcome.SubmitError != nil {
		fmt.Fprintln(errOut, "warning:", outcome.SubmitError)
	}
	fmt.Fprintln(out, outcome.Confirmation)
	if !outcome.Submitted {
		fmt.Fprintln(out, "Email:", outcome.MailtoURL)
		fmt.Fprintln(out, "Call: ", outcome.TelURL)
	}
	return nil
}

func printPrompt(out io.Writer, res engine.Result) {
	fmt.Fprintln(out, res.Prompt)
	for i, choice := range res.Choices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, choice)
	}
	fmt.Fprint(out, "> ")
}

// resolveChoice lets the user answer a multiple-choice question by its
// number. Anything that is not a valid number is taken verbatim.
func resolveChoice(choices []string, input string) string {
	trimmed := strings.TrimSpace(input)
	if len(choices) == 0 {
		return input
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 || n > len(choices) {
		return input
	}
	return choices[n-1]
}
