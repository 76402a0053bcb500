package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"sql2latex/internal/config"
	"sql2latex/internal/handler"
	"sql2latex/internal/report"
	"sql2latex/internal/service"
)

// newDBClient is a function that returns a service.DBClient for a driver.
// By default it is service.NewClient, but can be overridden in tests.
var newDBClient = service.NewClient

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sql2latex",
		Usage: "run SQL queries against an Oracle database and print the results as a LaTeX document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "path to query file"},
			&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "e.g. <first_name> <last_name> <student_number>"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "title of the document"},
		},
		Action: render,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the render API over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", EnvVars: []string{"PORT"}, Value: "8080", Usage: "listen port"},
				},
				Action: serve,
			},
		},
	}
}

func render(c *cli.Context) error {
	// Required flags are checked by hand so that `serve` keeps working
	// without them.
	for _, name := range []string{"query", "author", "title"} {
		if c.String(name) == "" {
			return cli.Exit(fmt.Sprintf("Required flag --%s not set", name), 2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	db, err := newDBClient(cfg.Driver)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	f, err := os.Open(c.String("query"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer f.Close()

	runner := &report.Runner{
		DB:     db,
		Out:    os.Stdout,
		Diag:   os.Stderr,
		Prompt: report.StdinPrompt(os.Stdin, os.Stderr),
	}
	if err := runner.Run(cfg, f, c.String("author"), c.String("title")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	db, err := newDBClient(cfg.Driver)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := db.Connect(cfg); err != nil {
		return cli.Exit("Failed to connect: "+err.Error(), 1)
	}
	defer db.Disconnect()
	handler.SetClient(db)

	r := gin.Default()

	r.GET("/ping", handler.Ping)
	r.POST("/render", handler.RenderHandler)

	return r.Run(":" + c.String("port"))
}
