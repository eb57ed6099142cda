package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"github.com/tritmam/mam"
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/internal/store"
	"github.com/tritmam/mam/trit"
)

func readSeed(path string) (trit.Hash, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return trit.Hash{}, err
	}
	s := trit.StringToTrits(string(data))
	if len(s) < trit.HashLength {
		return trit.Hash{}, fmt.Errorf("seed file %s has only %d trits, need at least %d", path, len(s), trit.HashLength)
	}
	return trit.FromTrits(s[:trit.HashLength]), nil
}

func cmdCreate(c *cli.Context) error {
	if c.String("message") == "" {
		return fmt.Errorf("-message is required")
	}

	seed, err := readSeed(c.String("seed-file"))
	if err != nil {
		return err
	}

	st, err := store.Open(c.String("state-file"))
	if err != nil {
		return err
	}
	defer st.Close()

	prev, err := st.Load()
	if err != nil {
		return err
	}

	sponge := curl.Default()
	message := trit.StringToTrits(c.String("message"))

	start := c.Int("start")
	count := c.Int("count")
	index := c.Int("index")
	nextStart := c.Int("next-start")
	nextCount := c.Int("next-count")
	security := c.Int("security")

	payload, root := mam.Create(seed, message, start, count, index, nextStart, nextCount, security, sponge)

	tag := mam.MessageID([][]trit.Trit{root.Trits()}, sponge)

	fmt.Printf("payload: %s\n", trit.TritsToString(payload))
	fmt.Printf("root: %s\n", trit.TritsToString(root.Trits()))
	fmt.Printf("channel tag: %s\n", trit.TritsToString(tag.Trits()))

	var next store.State
	next.Index = prev.Index + 1
	for i, t := range root.Trits() {
		next.Root[i] = int8(t)
	}
	return st.Save(next)
}

func cmdParse(c *cli.Context) error {
	if c.String("payload") == "" || c.String("root") == "" {
		return fmt.Errorf("-payload and -root are required")
	}

	payload := trit.StringToTrits(c.String("payload"))
	root := trit.FromTrits(trit.StringToTrits(c.String("root")))
	index := c.Int("index")

	sponge := curl.Default()
	message, next, err := mam.Parse(payload, root, index, sponge)
	if err != nil {
		return err
	}

	fmt.Printf("message: %s\n", trit.TritsToString(message))
	fmt.Printf("next root: %s\n", trit.TritsToString(next.Trits()))
	return nil
}

func main() {
	if envPath := os.Getenv("MAMCHANNEL_ENV"); envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	app := cli.NewApp()
	app.Name = "mamchannel"
	app.Usage = "publish and read masked authenticated messaging channels"

	defaultSeedFile := os.Getenv("MAMCHANNEL_SEED_FILE")
	if defaultSeedFile == "" {
		defaultSeedFile = "seed.trytes"
	}
	defaultStateFile := os.Getenv("MAMCHANNEL_STATE_FILE")
	if defaultStateFile == "" {
		defaultStateFile = "channel.state"
	}

	app.Commands = []cli.Command{
		{
			Name:  "create",
			Usage: "sign and mask the next message in a channel",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "seed-file", Value: defaultSeedFile},
				cli.StringFlag{Name: "state-file", Value: defaultStateFile},
				cli.StringFlag{Name: "message"},
				cli.IntFlag{Name: "start"},
				cli.IntFlag{Name: "count"},
				cli.IntFlag{Name: "index"},
				cli.IntFlag{Name: "next-start"},
				cli.IntFlag{Name: "next-count"},
				cli.IntFlag{Name: "security", Value: 1},
			},
			Action: cmdCreate,
		},
		{
			Name:  "parse",
			Usage: "unmask and verify a message against a channel root",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "payload"},
				cli.StringFlag{Name: "root"},
				cli.IntFlag{Name: "index"},
			},
			Action: cmdParse,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
