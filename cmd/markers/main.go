// markers 管理画笔标记的持久化数据
//
// 用法：
//
//	markers [-config file] [-backend name] list
//	markers [-config file] export <file[.zst]>
//	markers [-config file] import <file[.zst]>
//	markers [-config file] clear <regionId>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/decker502/brushmarkers/pkg/config"
	"github.com/decker502/brushmarkers/pkg/logging"
	"github.com/decker502/brushmarkers/pkg/markers"
	"github.com/decker502/brushmarkers/pkg/storage"
)

var (
	configPath = flag.String("config", "", "YAML 配置文件路径")
	backend    = flag.String("backend", "", "覆盖存储后端：gdata / sqlite / memory")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

var errUsage = errors.New("usage: markers [-config file] [-backend name] list | export <file> | import <file> | clear <regionId>")

func main() {
	flag.Parse()

	if err := run(flag.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "markers: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.LoadPluginConfig(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := logging.NewLogger(cfg.Log.Level, *verbose, nil)
	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	return dispatch(markers.NewRepository(store, logger), store, args, out)
}

// dispatch 执行子命令
func dispatch(repo *markers.Repository, store storage.Store, args []string, out io.Writer) error {
	switch args[0] {
	case "list":
		return listRegions(repo, store, out)

	case "export":
		if len(args) != 2 {
			return errUsage
		}
		n, err := exportRegions(repo, args[1], time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported %s regions to %s\n", humanize.Comma(int64(n)), args[1])
		return nil

	case "import":
		if len(args) != 2 {
			return errUsage
		}
		n, err := importRegions(repo, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %s regions from %s\n", humanize.Comma(int64(n)), args[1])
		return nil

	case "clear":
		if len(args) != 2 {
			return errUsage
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid region id %q: %w", args[1], err)
		}
		if err := repo.Save(id, nil); err != nil {
			return err
		}
		fmt.Fprintf(out, "cleared region %d\n", id)
		return nil
	}

	return errUsage
}

// listRegions 列出每个区域的标记数和记录大小
func listRegions(repo *markers.Repository, store storage.Store, out io.Writer) error {
	ids, err := repo.Regions()
	if err != nil {
		return err
	}

	var totalMarks, totalBytes int
	for _, id := range ids {
		raw, err := store.Get(markers.ConfigGroup, markers.RegionKey(id))
		if err != nil {
			return err
		}
		marks := repo.Load(id)
		totalMarks += len(marks)
		totalBytes += len(raw)
		fmt.Fprintf(out, "region %-6d (%3d, %3d)  %s marks  %s\n",
			id, id>>8, id&0xFF, humanize.Comma(int64(len(marks))), humanize.Bytes(uint64(len(raw))))
	}

	fmt.Fprintf(out, "%s regions, %s marks, %s\n",
		humanize.Comma(int64(len(ids))), humanize.Comma(int64(totalMarks)), humanize.Bytes(uint64(totalBytes)))
	return nil
}
