package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/saralbooks/saral/internal/config"
	"github.com/saralbooks/saral/internal/observability"
	"github.com/saralbooks/saral/internal/server"
	"github.com/saralbooks/saral/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
