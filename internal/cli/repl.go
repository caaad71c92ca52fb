package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// command is one REPL verb. An empty states list means always available.
type command struct {
	name   string
	usage  string
	help   string
	states []sessionState
	run    func(ctx context.Context, args []string) error
}

func (c command) allowed(st sessionState) bool {
	if len(c.states) == 0 {
		return true
	}
	for _, s := range c.states {
		if s == st {
			return true
		}
	}
	return false
}

// execIface is the minimal surface the REPL needs. The real App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	state(ctx context.Context) sessionState
	commands() []command
}

// runREPL reads a line, parses the first token as the command and runs it
// with the remaining tokens as arguments. Errors are printed as a single
// "Erro: ..." line and the loop goes on. It exits on end of input or when
// the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("bankup (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]
		st := a.state(ctx)

		switch name {
		case "help":
			printlnFn(helpText(a.commands(), st))
			continue
		case "exit", "quit":
			printlnFn("Até logo!")
			return
		}

		cmd, ok := findCommand(a.commands(), name)
		if !ok {
			printlnFn("Comando desconhecido:", name)
			continue
		}
		if !cmd.allowed(st) {
			printlnFn("Comando indisponível agora. Digite 'help' para ver as opções.")
			continue
		}
		if err := cmd.run(ctx, args); err != nil {
			printlnFn("Erro: " + UserMessage(err))
		}
	}
}

func findCommand(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func helpText(cmds []command, st sessionState) string {
	var b strings.Builder
	b.WriteString("Comandos disponíveis:\n")
	for _, c := range cmds {
		if !c.allowed(st) {
			continue
		}
		usage := c.usage
		if usage == "" {
			usage = c.name
		}
		fmt.Fprintf(&b, "  %-22s %s\n", usage, c.help)
	}
	fmt.Fprintf(&b, "  %-22s %s", "exit | quit", "sair")
	return b.String()
}

// commands lists every verb of the App and the states it is offered in.
func (a *App) commands() []command {
	guest := []sessionState{stateGuest, statePending, stateReset}
	loggedIn := []sessionState{stateIncomplete, stateReady}
	ready := []sessionState{stateReady}

	return []command{
		{name: "register", help: "criar conta", states: guest, run: a.register},
		{name: "login", help: "entrar com e-mail e senha", states: guest, run: a.login},
		{name: "forgot", usage: "forgot [email]", help: "recuperar senha", states: guest, run: a.forgot},
		{name: "verify", usage: "verify [código]", help: "informar o código recebido", states: []sessionState{statePending}, run: a.verify},
		{name: "resend", help: "reenviar o código", states: []sessionState{statePending}, run: a.resend},
		{name: "reset", help: "definir nova senha", states: []sessionState{stateReset}, run: a.reset},

		{name: "complete", help: "completar cadastro", states: []sessionState{stateIncomplete}, run: a.complete},
		{name: "profile", help: "ver perfil", states: loggedIn, run: a.showProfile},
		{name: "edit", help: "editar perfil", states: ready, run: a.editProfile},

		{name: "dashboard", help: "resumo das cobranças", states: ready, run: a.dashboard},
		{name: "payers", usage: "payers [busca]", help: "listar pagadores", states: ready, run: a.listPayers},
		{name: "payer", usage: "payer <id>", help: "detalhes do pagador", states: ready, run: a.showPayer},
		{name: "addpayer", help: "cadastrar pagador", states: ready, run: a.addPayer},
		{name: "editpayer", usage: "editpayer <id>", help: "editar pagador", states: ready, run: a.editPayer},
		{name: "rmpayer", usage: "rmpayer <id>", help: "remover pagador", states: ready, run: a.removePayer},
		{name: "history", usage: "history <payerId>", help: "cobranças do pagador por mês", states: ready, run: a.history},
		{name: "charges", help: "listar cobranças", states: ready, run: a.listCharges},
		{name: "charge", usage: "charge <id>", help: "detalhes da cobrança", states: ready, run: a.showCharge},
		{name: "addcharge", usage: "addcharge [payerId]", help: "criar cobrança", states: ready, run: a.addCharge},
		{name: "editcharge", usage: "editcharge <id>", help: "editar cobrança", states: ready, run: a.editCharge},
		{name: "paycharge", usage: "paycharge <id>", help: "marcar cobrança como paga", states: ready, run: a.payCharge},
		{name: "rmcharge", usage: "rmcharge <id>", help: "remover cobrança", states: ready, run: a.removeCharge},
		{name: "notifications", help: "notificações", states: ready, run: a.notifications},

		{name: "whoami", help: "estado da sessão", run: a.whoami},
		{name: "stats", help: "métricas do cliente", run: a.stats},
		{name: "logout", help: "sair da conta", states: loggedIn, run: a.logout},
	}
}
