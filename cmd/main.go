package cmd

import (
	"github.com/etnz/stacker"
	"github.com/etnz/stacker/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&addCmd{}, "stack")
	c.Register(&removeCmd{}, "stack")
	c.Register(&listCmd{}, "stack")

	c.Register(&summaryCmd{}, "valuation")
	c.Register(&priceCmd{}, "valuation")
	c.Register(&exportCmd{}, "valuation")
	c.Register(&assistCmd{}, "valuation")

	c.Register(&serveCmd{}, "server")
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	metals := make(predict.Set, 0, len(stacker.Metals))
	for _, m := range stacker.Metals {
		metals = append(metals, string(m))
	}
	topics := predict.Set{"*"}
	for _, t := range docs.Index() {
		topics = append(topics, t.Name)
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"user":  predict.Something,
			"store": predict.Set{"file", "sqlite", "redis"},
			"data":  predict.Files("*"),
			"v":     predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"help":     {Args: predict.Set{"add", "remove", "list", "summary", "price", "export", "assist", "serve", "topic"}},
			"flags":    {},
			"commands": {},
			"topic":    {Args: topics, Flags: map[string]complete.Predictor{"l": predict.Nothing}},
			"add": {Flags: map[string]complete.Predictor{
				"name":     predict.Something,
				"qty":      predict.Something,
				"oz":       predict.Something,
				"purity":   predict.Set{"0.999", "0.9999", "0.958", "0.925", "0.9167", "0.900"},
				"category": predict.Set{"coin", "bar", "round", "junk"},
				"metal":    metals,
				"price":    predict.Something,
				"date":     predict.Something,
			}},
			"remove":  {Args: predict.Something},
			"list":    {Flags: map[string]complete.Predictor{"metal": metals}},
			"summary": {Flags: map[string]complete.Predictor{"by": predict.Set{"category", "type"}, "spot": predict.Something, "gold-spot": predict.Something}},
			"price":   {Args: metals},
			"export":  {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
			"assist":  {},
			"serve":   {Flags: map[string]complete.Predictor{"addr": predict.Something}},
		},
	}
}
