package config

import (
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/IlikeChooros/go-chomp/pkg/search"
)

type Config struct {
	Log    logx.LogConf
	Board  BoardConf
	Search SearchConf
	Arena  ArenaConf
	Server ServerConf
}

// Default board of the interactive game
type BoardConf struct {
	Width  int `json:",default=3,range=[1:8]"`
	Height int `json:",default=4,range=[1:8]"`
}

type SearchConf struct {
	// Milliseconds, -1 means no time limit
	MovetimeMs int    `json:",default=-1"`
	Nodes      uint64 `json:",optional"`
	Threads    int    `json:",default=1,range=[1:64]"`
	// Ignore the node and time limits, only cancellation stops the search
	Infinite bool `json:",optional"`
}

type ArenaConf struct {
	Games   int    `json:",default=100"`
	Workers int    `json:",default=2,range=[1:64]"`
	Width   int    `json:",default=3,range=[1:8]"`
	Height  int    `json:",default=4,range=[1:8]"`
	Player1 string `json:",default=oracle,options=oracle|fallback|random"`
	Player2 string `json:",default=random,options=oracle|fallback|random"`
	Seed    int64  `json:",optional"`
	// Where to write the json summary, nothing is written if empty
	Summary string `json:",optional"`
}

type ServerConf struct {
	Addr       string `json:",default=localhost:8080"`
	MaxSquares int    `json:",default=20"`
	Pprof      bool   `json:",optional"`
}

// Search limits described by the config
func (c Config) Limits() *search.Limits {
	return c.Search.Limits()
}

func (c SearchConf) Limits() *search.Limits {
	limits := search.DefaultLimits().
		SetMovetime(c.MovetimeMs).
		SetNodes(c.Nodes).
		SetThreads(c.Threads)
	if c.Infinite {
		limits.SetInfinite(true)
	}
	return limits
}

// Load the config file, yaml, json and toml are supported
func Load(path string) (Config, error) {
	var c Config
	err := conf.Load(path, &c)
	return c, err
}

func MustLoad(path string) Config {
	var c Config
	conf.MustLoad(path, &c)
	return c
}

func FromYAML(content []byte) (Config, error) {
	var c Config
	err := conf.LoadFromYamlBytes(content, &c)
	return c, err
}
