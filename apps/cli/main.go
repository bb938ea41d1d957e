package main

import (
	"fmt"
	"log"
	"os"

	"github.com/codemaster/cli/core"
	"github.com/codemaster/cli/core/catalog"
	"github.com/codemaster/cli/core/progress"
	"github.com/codemaster/cli/core/teacher"
	"github.com/codemaster/cli/core/user"
	logsvc "github.com/codemaster/cli/services/logger"
	"github.com/codemaster/cli/services/tokenstore"
	"github.com/codemaster/cli/storage/rest"
)

func main() {
	std := log.New(os.Stderr, "", log.LstdFlags)
	var logger core.Logger
	if core.Conf.GetString("rollbarToken") != "" {
		logger = logsvc.NewRollbarLogger(std, os.Getenv("ENV"))
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	tokens := tokenstore.NewFileStore(core.Conf.GetString("tokenPath"))
	client := rest.NewClient(core.Conf.GetString("apiBaseURL"), tokens)

	session := user.NewStore(rest.NewIdentityRepository(client), tokens, logger)
	if err := session.Restore(); err != nil {
		logger.Warn("restoring session", err)
	}

	cli := &commandLine{
		session:  session,
		catalog:  catalog.NewService(rest.NewCatalogRepository(client)),
		progRepo: rest.NewProgressRepository(client),
		teacher:  teacher.NewService(rest.NewTeacherRepository(client)),
		out:      os.Stdout,
	}
	cli.progress = progress.NewService(cli.progRepo)

	if err := cli.run(os.Args); err != nil && err != errHelp {
		fmt.Fprintln(os.Stderr, displayError(err))
		os.Exit(1)
	}
}
