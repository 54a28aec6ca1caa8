package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# iossim bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(iossim completion bash)"

_iossim_devicetypes() {
    iossim showdevicetypes 2>/dev/null
}

_iossim_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="showsdks showdevicetypes resolve launch start pick config doctor version completion"
    local global_flags="-f --format -q --quiet -v --verbose"

    case "${prev}" in
        iossim)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "text ndjson" -- "${cur}"))
            return
            ;;
        -d|--devicetypeid)
            local IFS=$'\n'
            COMPREPLY=($(compgen -W "$(_iossim_devicetypes)" -- "${cur}"))
            return
            ;;
        --log)
            _filedir
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        launch)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "-d --devicetypeid --log --exit --wait-for-debugger ${global_flags}" -- "${cur}"))
            else
                _filedir -d
            fi
            ;;
        start)
            COMPREPLY=($(compgen -W "-d --devicetypeid -w --wait --boot-timeout ${global_flags}" -- "${cur}"))
            ;;
        resolve)
            COMPREPLY=($(compgen -W "-d --devicetypeid ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _iossim_completions iossim
`

const zshCompletion = `#compdef iossim
# iossim zsh completion script
# Add to ~/.zshrc:
#   eval "$(iossim completion zsh)"

_iossim() {
    local -a commands
    commands=(
        'showsdks:List the installed simulator runtimes'
        'showdevicetypes:List every usable --devicetypeid value'
        'resolve:Resolve a --devicetypeid to a simulator instance'
        'launch:Install and launch an .app bundle on a simulator'
        'start:Start Simulator.app on a device'
        'pick:Interactively pick a --devicetypeid'
        'config:Show or manage configuration'
        'doctor:Check system requirements and configuration'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(text ndjson)'
        '--format[Output format]:format:(text ndjson)'
        '-q[Only print errors and requested data]'
        '--quiet[Only print errors and requested data]'
        '-v[Show debug output]'
        '--verbose[Show debug output]'
    )

    local devicetype_opt='--devicetypeid[Device type and optional runtime]:devicetype:->devicetypes'

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                launch)
                    _arguments \
                        $devicetype_opt \
                        '--log[Stream device logs to PATH]:path:_files' \
                        '--exit[Exit right after the app is launched]' \
                        '--wait-for-debugger[Launch suspended until a debugger attaches]' \
                        '1:app bundle:_files -/' \
                        $global_opts
                    ;;
                start)
                    _arguments \
                        $devicetype_opt \
                        '--wait[Wait until the device reports Booted]' \
                        '--boot-timeout[How long --wait waits]:duration:' \
                        $global_opts
                    ;;
                resolve)
                    _arguments $devicetype_opt $global_opts
                    ;;
                config)
                    _arguments '1:subcommand:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac

            case $state in
                devicetypes)
                    local -a types
                    types=(${(f)"$(iossim showdevicetypes 2>/dev/null)"})
                    compadd -a types
                    ;;
            esac
            ;;
    esac
}

compdef _iossim iossim
`

const fishCompletion = `# iossim fish completion script
# Add to ~/.config/fish/completions/iossim.fish

# Disable file completion by default
complete -c iossim -f

# Commands
complete -c iossim -n "__fish_use_subcommand" -a "showsdks" -d "List the installed simulator runtimes"
complete -c iossim -n "__fish_use_subcommand" -a "showdevicetypes" -d "List every usable --devicetypeid value"
complete -c iossim -n "__fish_use_subcommand" -a "resolve" -d "Resolve a --devicetypeid to a simulator instance"
complete -c iossim -n "__fish_use_subcommand" -a "launch" -d "Install and launch an .app bundle on a simulator"
complete -c iossim -n "__fish_use_subcommand" -a "start" -d "Start Simulator.app on a device"
complete -c iossim -n "__fish_use_subcommand" -a "pick" -d "Interactively pick a --devicetypeid"
complete -c iossim -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c iossim -n "__fish_use_subcommand" -a "doctor" -d "Check system requirements and configuration"
complete -c iossim -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c iossim -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c iossim -s f -l format -d "Output format" -xa "text ndjson"
complete -c iossim -s q -l quiet -d "Only print errors and requested data"
complete -c iossim -s v -l verbose -d "Show debug output"

# Device type for launch, start and resolve
complete -c iossim -n "__fish_seen_subcommand_from launch start resolve" -s d -l devicetypeid -d "Device type and optional runtime" -xa "(iossim showdevicetypes 2>/dev/null)"

# Launch command
complete -c iossim -n "__fish_seen_subcommand_from launch" -F
complete -c iossim -n "__fish_seen_subcommand_from launch" -l log -d "Stream device logs to PATH" -r
complete -c iossim -n "__fish_seen_subcommand_from launch" -l exit -d "Exit right after the app is launched"
complete -c iossim -n "__fish_seen_subcommand_from launch" -l wait-for-debugger -d "Launch suspended until a debugger attaches"

# Start command
complete -c iossim -n "__fish_seen_subcommand_from start" -s w -l wait -d "Wait until the device reports Booted"
complete -c iossim -n "__fish_seen_subcommand_from start" -l boot-timeout -d "How long --wait waits" -x

# Config command
complete -c iossim -n "__fish_seen_subcommand_from config" -a "show path generate"

# Completion command
complete -c iossim -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
