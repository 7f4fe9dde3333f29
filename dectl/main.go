package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/docopt/docopt-go"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/directededge/client/directededge"
)


const DectlVersion = "0.0.1"


var Out *log.Logger
var Err *log.Logger

func init() {
	Out = log.New(os.Stdout, "", 0)
	Err = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}


func main() {
	usage := `Directed Edge control.

The account and password default to $DIRECTEDEDGE_DB and $DIRECTEDEDGE_PASS.
The password is prompted for when neither is set.

Usage:
    dectl show <item> [--related | --recommended] [--max=<max>] [--tags=<tags>] [--exclude_linked] [options]
    dectl tag <item> <tag>... [options]
    dectl untag <item> <tag>... [options]
    dectl set <item> <key> <value> [options]
    dectl unset <item> <key> [options]
    dectl link <item> <target> [--weight=<weight>] [--type=<type>] [options]
    dectl unlink <item> <target> [--type=<type>] [options]
    dectl import <file> [options]
    dectl export <file> <items>... [options]

Options:
    -h --help                Show this screen.
    --version                Show version.
    --db=<db>                Account name.
    --password=<password>    Account password.
    --host=<host>            Service host [default: webservice.directededge.com].
    --protocol=<protocol>    http or https [default: http].
    --timeout=<timeout>      Request timeout [default: 60s].
    --verbose=<level>        Log verbosity [default: 0].
    --max=<max>              Maximum results [default: 20].
    --tags=<tags>            Comma separated tags to filter results.
    --exclude_linked         Leave out items the item already links to.
    --weight=<weight>        Link weight [default: 0].
    --type=<type>            Link type.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], DectlVersion)
	if err != nil {
		panic(err)
	}

	configureLogging(opts)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if import_, _ := opts.Bool("import"); import_ {
		err = importFile(ctx, opts)
	} else if export_, _ := opts.Bool("export"); export_ {
		err = exportItems(ctx, opts)
	} else if show_, _ := opts.Bool("show"); show_ {
		err = show(ctx, opts)
	} else {
		err = mutate(ctx, opts)
	}

	if err != nil {
		Err.Printf("%s\n", err)
		os.Exit(1)
	}
}


func configureLogging(opts docopt.Opts) {
	// glog registers its flags on the default flag set
	flag.Set("logtostderr", "true")
	if verbose, err := opts.String("--verbose"); err == nil {
		flag.Set("v", verbose)
	}
}


func openDatabase(ctx context.Context, opts docopt.Opts) (*directededge.Database, error) {
	settings := directededge.DefaultDatabaseSettings()
	if host, err := opts.String("--host"); err == nil && host != "" {
		settings.Host = host
	}
	if protocol, err := opts.String("--protocol"); err == nil && protocol != "" {
		settings.Protocol = protocol
	}
	if timeoutStr, err := opts.String("--timeout"); err == nil && timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("Invalid timeout (%s).", err)
		}
		settings.HttpTimeout = timeout
	}

	accountName, _ := opts.String("--db")
	if accountName == "" {
		accountName = os.Getenv("DIRECTEDEDGE_DB")
	}
	if accountName == "" {
		return nil, fmt.Errorf("No account. Use --db or set DIRECTEDEDGE_DB.")
	}

	password, _ := opts.String("--password")
	if password == "" {
		password = os.Getenv("DIRECTEDEDGE_PASS")
	}
	if password == "" {
		fmt.Print("Enter password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, err
		}
		password = string(passwordBytes)
		fmt.Printf("\n")
	}

	transport := directededge.NewHttpTransportWithContext(ctx, settings)
	return directededge.NewDatabaseWithTransport(accountName, password, settings, transport), nil
}


// waits for a callback style call, or for the context
func await[R any](ctx context.Context, call func(directededge.ApiCallback[R])) (R, error) {
	callback, c := directededge.NewBlockingApiCallback[R]()
	call(callback)
	select {
	case <-ctx.Done():
		var empty R
		return empty, ctx.Err()
	case result := <-c:
		return result.Result, result.Error
	}
}

func readItem(ctx context.Context, item *directededge.Item) error {
	_, err := await[*directededge.Item](ctx, func(callback directededge.ApiCallback[*directededge.Item]) {
		item.Read(callback)
	})
	return err
}


func show(ctx context.Context, opts docopt.Opts) error {
	database, err := openDatabase(ctx, opts)
	if err != nil {
		return err
	}

	itemId, _ := opts.String("<item>")
	item := directededge.NewItem(database, itemId)

	related, _ := opts.Bool("--related")
	recommended, _ := opts.Bool("--recommended")
	if !related && !recommended {
		_, err := directededge.TraceWithReturnError(fmt.Sprintf("read %s", itemId), func() (int, error) {
			err := readItem(ctx, item)
			return len(item.Links()), err
		})
		if err != nil {
			return err
		}
		printItem(item)
		return nil
	}

	params, err := queryParams(opts)
	if err != nil {
		return err
	}
	items, err := directededge.TraceWithReturnError(fmt.Sprintf("query %s", itemId), func() ([]*directededge.Item, error) {
		return await[[]*directededge.Item](ctx, func(callback directededge.ApiCallback[[]*directededge.Item]) {
			if related {
				item.RelatedItems(params, callback)
			} else {
				item.RecommendedItems(params, callback)
			}
		})
	})
	if err != nil {
		return err
	}

	// results come back uncached; load their tags together
	g, gCtx := errgroup.WithContext(ctx)
	for _, resultItem := range items {
		resultItem := resultItem
		g.Go(func() error {
			return readItem(gCtx, resultItem)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, resultItem := range items {
		Out.Printf("%s\t%s\n", resultItem.Id(), strings.Join(resultItem.Tags(), ","))
	}
	return nil
}

func queryParams(opts docopt.Opts) (*directededge.QueryParams, error) {
	params := directededge.DefaultQueryParams()
	if maxStr, err := opts.String("--max"); err == nil && maxStr != "" {
		maxResults, err := strconv.Atoi(maxStr)
		if err != nil {
			return nil, fmt.Errorf("Invalid max (%s).", err)
		}
		params.MaxResults = maxResults
	}
	if tags, err := opts.String("--tags"); err == nil && tags != "" {
		params.Tags = strings.Split(tags, ",")
	}
	params.ExcludeLinked, _ = opts.Bool("--exclude_linked")
	return params, nil
}

func printItem(item *directededge.Item) {
	Out.Printf("item %s\n", item.Id())
	for _, link := range item.Links() {
		Out.Printf("link\t%s\t%d\t%s\n", link.Target, link.Weight, link.Type)
	}
	for _, tag := range item.Tags() {
		Out.Printf("tag\t%s\n", tag)
	}
	properties := item.Properties()
	for _, key := range properties.Keys() {
		value, _ := properties.Get(key)
		Out.Printf("property\t%s\t%s\n", key, value)
	}
}


// reads the item, applies the change, and saves the full item
func mutate(ctx context.Context, opts docopt.Opts) error {
	database, err := openDatabase(ctx, opts)
	if err != nil {
		return err
	}

	itemId, _ := opts.String("<item>")
	item := directededge.NewItem(database, itemId)
	// an item that does not exist yet starts empty
	if err := readItem(ctx, item); err != nil && !directededge.IsNotFound(err) {
		return err
	}

	if err := applyMutation(item, opts); err != nil {
		return err
	}

	_, err = await[struct{}](ctx, func(callback directededge.ApiCallback[struct{}]) {
		item.Save(callback)
	})
	if err != nil {
		return err
	}
	printItem(item)
	return nil
}

func applyMutation(item *directededge.Item, opts docopt.Opts) error {
	tags, _ := opts["<tag>"].([]string)
	linkType, _ := opts.String("--type")

	if tag_, _ := opts.Bool("tag"); tag_ {
		for _, tag := range tags {
			if !item.AddTag(tag) && !slices.Contains(item.Tags(), tag) {
				return fmt.Errorf("Invalid tag %q.", tag)
			}
		}
	} else if untag_, _ := opts.Bool("untag"); untag_ {
		for _, tag := range tags {
			item.RemoveTag(tag)
		}
	} else if set_, _ := opts.Bool("set"); set_ {
		key, _ := opts.String("<key>")
		value, _ := opts.String("<value>")
		item.SetProperty(key, value)
	} else if unset_, _ := opts.Bool("unset"); unset_ {
		key, _ := opts.String("<key>")
		item.RemoveProperty(key)
	} else if link_, _ := opts.Bool("link"); link_ {
		target, _ := opts.String("<target>")
		weight, err := opts.Int("--weight")
		if err != nil {
			return fmt.Errorf("Invalid weight (%s).", err)
		}
		item.LinkTo(target, weight, linkType)
	} else if unlink_, _ := opts.Bool("unlink"); unlink_ {
		target, _ := opts.String("<target>")
		if !item.Unlink(target, linkType) {
			return fmt.Errorf("No link to %s.", target)
		}
	}
	return nil
}

func importFile(ctx context.Context, opts docopt.Opts) error {
	database, err := openDatabase(ctx, opts)
	if err != nil {
		return err
	}
	path, _ := opts.String("<file>")
	_, err = await[struct{}](ctx, func(callback directededge.ApiCallback[struct{}]) {
		database.ImportFromFile(path, callback)
	})
	return err
}


func exportItems(ctx context.Context, opts docopt.Opts) error {
	database, err := openDatabase(ctx, opts)
	if err != nil {
		return err
	}

	path, _ := opts.String("<file>")
	itemIds, _ := opts["<items>"].([]string)

	items := []*directededge.Item{}
	g, gCtx := errgroup.WithContext(ctx)
	for _, itemId := range itemIds {
		item := directededge.NewItem(database, itemId)
		items = append(items, item)
		g.Go(func() error {
			return readItem(gCtx, item)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	exporter, err := directededge.NewExporter(path)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := exporter.Export(item); err != nil {
			exporter.Finish()
			return err
		}
	}
	if err := exporter.Finish(); err != nil {
		return err
	}
	Out.Printf("exported %d items to %s\n", len(items), path)
	return nil
}
