package main

import (
	"fmt"
	"io"
	"strings"
)

// commandNames returns the registered command names in order.
func commandNames() []string {
	cmds := getCommands()
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return names
}

// flagWords renders the word list completed after a dash: every long flag
// plus its shorthand.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// globToAlternation turns "*.yaml,*.yml" into "yaml|yml" for bash extglob.
func globToAlternation(glob string) string {
	parts := strings.Split(glob, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return strings.Join(exts, "|")
}

// globToZshPattern turns "*.yaml,*.yml" into "*.yaml *.yml" for _files -g.
func globToZshPattern(glob string) string {
	return strings.ReplaceAll(glob, ",", " ")
}

// generateBash writes a bash completion script.
func generateBash(w io.Writer) error {
	cmds := getCommands()
	names := strings.Join(commandNames(), " ")

	fmt.Fprintln(w, "# bash completion for feditext")
	fmt.Fprintln(w, "_feditext() {")
	fmt.Fprintln(w, "    local cur prev")
	fmt.Fprintln(w, "    COMPREPLY=()")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    local commands=\"%s\"\n", names)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintln(w, "        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"${COMP_WORDS[1]}\" in")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "completion":
			fmt.Fprintln(w, "    completion)")
			fmt.Fprintln(w, "        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") )")
			fmt.Fprintln(w, "        ;;")
		case "help":
			fmt.Fprintln(w, "    help)")
			fmt.Fprintln(w, "        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )")
			fmt.Fprintln(w, "        ;;")
		default:
			if len(cmd.Flags) == 0 && !cmd.TakesFiles {
				continue
			}
			fmt.Fprintf(w, "    %s)\n", cmd.Name)
			writeBashFlagCases(w, cmd.Flags)
			fmt.Fprintln(w, "        if [[ \"$cur\" == -* ]]; then")
			fmt.Fprintf(w, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n",
				strings.Join(flagWords(cmd.Flags), " "))
			fmt.Fprintln(w, "            return")
			fmt.Fprintln(w, "        fi")
			if cmd.TakesFiles {
				fmt.Fprintf(w, "        COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") )\n",
					globToAlternation(cmd.FilePattern))
				fmt.Fprintln(w, "        COMPREPLY+=( $(compgen -d -- \"$cur\") )")
			}
			fmt.Fprintln(w, "        ;;")
		}
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _feditext feditext")
	return nil
}

// writeBashFlagCases emits prev-based value completion for enum, file, and
// directory flags.
func writeBashFlagCases(w io.Writer, flags []flagDef) {
	var arms []string
	for _, f := range flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			arms = append(arms, fmt.Sprintf(
				"        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n            return ;;",
				pattern, strings.Join(f.Values, " ")))
		case flagFile:
			arms = append(arms, fmt.Sprintf(
				"        %s)\n            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") )\n            return ;;",
				pattern, globToAlternation(f.FileGlob)))
		case flagDir:
			arms = append(arms, fmt.Sprintf(
				"        %s)\n            COMPREPLY=( $(compgen -d -- \"$cur\") )\n            return ;;",
				pattern))
		}
	}
	if len(arms) == 0 {
		return
	}

	fmt.Fprintln(w, "        case \"$prev\" in")
	for _, arm := range arms {
		fmt.Fprintln(w, arm)
	}
	fmt.Fprintln(w, "        esac")
}

// generateZsh writes a zsh completion script.
func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef feditext")
	fmt.Fprintln(w, "# zsh completion for feditext")
	fmt.Fprintln(w, "_feditext() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$words[2]\" in")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "completion":
			fmt.Fprintln(w, "    completion)")
			fmt.Fprintln(w, "        _values 'shell' bash zsh fish powershell")
			fmt.Fprintln(w, "        ;;")
		case "help":
			fmt.Fprintln(w, "    help)")
			fmt.Fprintf(w, "        _values 'command' %s\n", strings.Join(commandNames(), " "))
			fmt.Fprintln(w, "        ;;")
		default:
			if len(cmd.Flags) == 0 && !cmd.TakesFiles {
				continue
			}
			fmt.Fprintf(w, "    %s)\n", cmd.Name)
			fmt.Fprintln(w, "        _arguments \\")
			for _, f := range cmd.Flags {
				for _, spec := range zshFlagSpecs(f) {
					fmt.Fprintf(w, "            %s \\\n", spec)
				}
			}
			if cmd.TakesFiles {
				fmt.Fprintf(w, "            '*:input:_files -g \"%s\"'\n", globToZshPattern(cmd.FilePattern))
			} else {
				fmt.Fprintln(w, "            '*::arg:->args'")
			}
			fmt.Fprintln(w, "        ;;")
		}
	}

	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "compdef _feditext feditext")
	return nil
}

// zshFlagSpecs renders _arguments specs for one flag (long and short form).
func zshFlagSpecs(f flagDef) []string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", globToZshPattern(f.FileGlob))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	long := "--" + f.Long
	if f.Type != flagBool {
		long += "="
	}

	specs := []string{fmt.Sprintf("'%s[%s]%s'", long, f.Desc, action)}
	if f.Short != "" {
		specs = append(specs, fmt.Sprintf("'-%s[%s]%s'", f.Short, f.Desc, action))
	}
	return specs
}

// generateFish writes a fish completion script.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for feditext")
	fmt.Fprintln(w, "complete -c feditext -f")
	fmt.Fprintln(w)

	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c feditext -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w)

	for _, cmd := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", cmd.Name)

		switch cmd.Name {
		case "completion":
			fmt.Fprintf(w, "complete -c feditext -n '%s' -xa 'bash zsh fish powershell'\n", cond)
		case "help":
			fmt.Fprintf(w, "complete -c feditext -n '%s' -xa '%s'\n", cond, strings.Join(commandNames(), " "))
		default:
			for _, f := range cmd.Flags {
				line := fmt.Sprintf("complete -c feditext -n '%s' -l %s", cond, f.Long)
				if f.Short != "" {
					line += " -s " + f.Short
				}
				switch f.Type {
				case flagBool:
					// no argument
				case flagEnum:
					line += fmt.Sprintf(" -xa '%s'", strings.Join(f.Values, " "))
				case flagFile, flagDir:
					line += " -r -F"
				default:
					line += " -x"
				}
				line += fmt.Sprintf(" -d '%s'", f.Desc)
				fmt.Fprintln(w, line)
			}
			if cmd.TakesFiles {
				for _, pattern := range strings.Split(cmd.FilePattern, ",") {
					suffix := strings.TrimPrefix(pattern, "*")
					fmt.Fprintf(w, "complete -c feditext -n '%s' -a '(__fish_complete_suffix %s)'\n", cond, suffix)
				}
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

// generatePowerShell writes a PowerShell completion script.
func generatePowerShell(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# PowerShell completion for feditext")
	fmt.Fprintln(w, "Register-ArgumentCompleter -Native -CommandName feditext -ScriptBlock {")
	fmt.Fprintln(w, "    param($wordToComplete, $commandAst, $cursorPosition)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $commands = @(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        @{ Name = '%s'; Desc = '%s' }\n", c.Name, c.Desc)
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    $elements = $commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() }")
	fmt.Fprintln(w, "    if (-not $elements -or ($elements.Count -eq 1 -and $elements[0] -eq $wordToComplete)) {")
	fmt.Fprintln(w, "        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {")
	fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)")
	fmt.Fprintln(w, "        }")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    switch ($elements[0]) {")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "completion":
			fmt.Fprintln(w, "    'completion' {")
			fmt.Fprintln(w, "        @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
			fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
			fmt.Fprintln(w, "        }")
			fmt.Fprintln(w, "    }")
		case "help":
			fmt.Fprintln(w, "    'help' {")
			fmt.Fprintln(w, "        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {")
			fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)")
			fmt.Fprintln(w, "        }")
			fmt.Fprintln(w, "    }")
		default:
			if len(cmd.Flags) == 0 {
				continue
			}
			words := flagWords(cmd.Flags)
			quoted := make([]string, 0, len(words))
			for _, word := range words {
				quoted = append(quoted, "'"+word+"'")
			}
			fmt.Fprintf(w, "    '%s' {\n", cmd.Name)
			fmt.Fprintf(w, "        @(%s) | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n", strings.Join(quoted, ", "))
			fmt.Fprintln(w, "            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)")
			fmt.Fprintln(w, "        }")
			fmt.Fprintln(w, "    }")
		}
	}

	fmt.Fprintln(w, "    }")
	fmt.Fprintln(w, "}")
	return nil
}
