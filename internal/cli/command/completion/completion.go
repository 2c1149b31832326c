package completion

import (
	"context"
	"fmt"
	"io"

	"github.com/thomas-vilte/relnotes/internal/config"
	"github.com/thomas-vilte/relnotes/internal/i18n"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `#! /bin/bash

_relnotes_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    local cmd_context=("${COMP_WORDS[@]:0:$COMP_CWORD}")
    opts=$( "${cmd_context[@]}" --generate-shell-completion )
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _relnotes_bash_autocomplete relnotes
`

const zshCompletionScript = `#compdef relnotes

_relnotes() {
  local -a opts
  local cmd_context=("${(@)words[1,$CURRENT-1]}")
  opts=("${(@f)$("${cmd_context[@]}" --generate-shell-completion)}")
  _describe 'values' opts
}

compdef _relnotes relnotes
`

type CompletionCommandFactory struct {
	out io.Writer
}

func NewCompletionCommandFactory(out io.Writer) *CompletionCommandFactory {
	return &CompletionCommandFactory{out: out}
}

func (c *CompletionCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "completion",
		Usage: t.GetMessage("completion.usage", 0, nil),
		Commands: []*cli.Command{
			c.script("bash", t.GetMessage("completion.bash_usage", 0, nil), bashCompletionScript),
			c.script("zsh", t.GetMessage("completion.zsh_usage", 0, nil), zshCompletionScript),
		},
	}
}

func (c *CompletionCommandFactory) script(shell, usage, body string) *cli.Command {
	return &cli.Command{
		Name:  shell,
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprint(c.out, body)
			return err
		},
	}
}
