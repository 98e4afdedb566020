package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

const shellGlobal = "quatrominos_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(shellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// scriptCommand exposes a shell command to Lua. The Lua function takes the
// rest of the command line as one string and returns the command's output,
// or nil and an error message.
func scriptCommand(name string, handler func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		sc := getShell(L)
		cmd, err := extractFields(name + " " + L.OptString(1, ""))
		if err == nil {
			var r *Response
			r, err = handler(sc, cmd)
			if err == nil {
				if r == nil {
					L.Push(lua.LString(""))
				} else {
					L.Push(lua.LString(r.message))
				}
				// return number of results pushed to stack.
				return 1
			}
		}
		log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
}

var scriptCommands = map[string]func(*ShellController, *shellcmd) (*Response, error){
	"new":      (*ShellController).newGame,
	"load":     (*ShellController).load,
	"show":     (*ShellController).show,
	"hand":     (*ShellController).hand,
	"moves":    (*ShellController).moves,
	"place":    (*ShellController).place,
	"undo":     (*ShellController).undo,
	"solve":    (*ShellController).solve,
	"greedy":   (*ShellController).greedyMove,
	"aiplay":   (*ShellController).aiplay,
	"autoplay": (*ShellController).autoplay,
	"lost":     (*ShellController).lost,
	"position": (*ShellController).position,
	"set":      (*ShellController).set,
}

// script runs a Lua file. Each shell command is available as a function
// named quatrominos_<command>, e.g. quatrominos_solve("-maxnodes 10000"),
// and require("json") encodes and decodes JSON. Whatever the script
// returns last is shown.
func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need a lua file for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(shellGlobal, lsc)
	for name, handler := range scriptCommands {
		L.SetGlobal("quatrominos_"+name, L.NewFunction(scriptCommand(name, handler)))
	}

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Str("file", filepath).Msg("script-failed")
		return nil, err
	}
	if L.GetTop() == 0 || L.Get(-1) == lua.LNil {
		return msg("script finished"), nil
	}
	return msg(L.Get(-1).String()), nil
}
