// worth-db is the database maintenance CLI: stream backups, restores,
// seeding from JSON fixtures, and clearing the ledger.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/models"
	"github.com/bobmcallan/worth/internal/storage/ledgerdb"
)

const backupPrefix = "worth.badger."
const backupSuffix = ".bak"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	cfg, err := loadConfig()
	if err != nil {
		fatal("failed to load config: %v", err)
	}
	logger := common.NewLogger("warn")

	var cmdErr error
	switch cmd {
	case "backup":
		cmdErr = backupCommand(logger, cfg, args)
	case "restore":
		cmdErr = restoreCommand(logger, cfg, args)
	case "seed":
		cmdErr = seedCommand(logger, cfg, args)
	case "clear":
		cmdErr = clearCommand(logger, cfg, args)
	case "clean":
		cmdErr = cleanCommand(cfg, args)
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		fatal("%s failed: %v", cmd, cmdErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: worth-db <command> [flags]

Commands:
  backup [name]          Back up the database (default name: timestamp)
  restore <name> [-y]    Restore a backup after backing up the current db
  seed <name|path> [-y]  Backup, clear, then load a JSON seed file
  clear [-y]             Backup, then remove all accounts and snapshots
  clean [-y]             Delete all backup files`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadConfig() (*common.Config, error) {
	configPath := os.Getenv("WORTH_CONFIG")
	if configPath == "" {
		configPath = "config/worth.toml"
	}
	return common.LoadConfig(configPath)
}

// confirm prompts on stdin unless skip is set. An empty answer means yes.
func confirm(prompt string, skip bool) bool {
	if skip {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [Y/n] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes"
}

func defaultBackupName() string {
	return time.Now().UTC().Format("20060102-150405")
}

// backupDir is the directory holding backup files, next to the data dir.
func backupDir(cfg *common.Config) string {
	return filepath.Dir(cfg.Storage.Path)
}

func backupPath(cfg *common.Config, name string) string {
	return filepath.Join(backupDir(cfg), backupPrefix+name+backupSuffix)
}

func openStore(logger *common.Logger, cfg *common.Config) (*ledgerdb.Store, error) {
	return ledgerdb.NewStore(logger, cfg.Storage.Path)
}

// writeBackup streams the whole database into a single backup file.
func writeBackup(store *ledgerdb.Store, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("backup %s already exists (use -overwrite)", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := store.DB().Badger().Backup(w, 0); err != nil {
		return fmt.Errorf("stream backup: %w", err)
	}
	return w.Flush()
}

func backupCommand(logger *common.Logger, cfg *common.Config, args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "overwrite an existing backup with the same name")
	fs.Parse(args)

	name := defaultBackupName()
	if fs.NArg() > 0 {
		name = fs.Arg(0)
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	path := backupPath(cfg, name)
	if err := writeBackup(store, path, *overwrite); err != nil {
		return err
	}
	fmt.Printf("Backed up database to %s\n", path)
	return nil
}

func restoreCommand(logger *common.Logger, cfg *common.Config, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation prompt")
	fs.Parse(args)

	if fs.NArg() == 0 {
		names, _ := listBackupNames(cfg)
		if len(names) > 0 {
			fmt.Fprintln(os.Stderr, "Available backups:")
			for _, n := range names {
				fmt.Fprintf(os.Stderr, "  %s\n", n)
			}
		}
		return fmt.Errorf("missing backup name")
	}
	name := fs.Arg(0)

	path := backupPath(cfg, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup %s: %w", path, err)
	}
	defer f.Close()

	if !confirm(fmt.Sprintf("Replace the current database with backup %q?", name), *yes) {
		return fmt.Errorf("aborted")
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Keep a pre-restore backup of whatever is being replaced.
	preName := defaultBackupName() + "-pre-restore"
	if err := writeBackup(store, backupPath(cfg, preName), false); err != nil {
		return err
	}

	db := store.DB().Badger()
	if err := db.DropAll(); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}
	if err := db.Load(bufio.NewReader(f), 16); err != nil {
		return fmt.Errorf("load backup: %w", err)
	}

	fmt.Printf("Restored database from %s (previous state saved as %s)\n", path, preName)
	return nil
}

// seedFile is the JSON fixture format: a full account catalogue plus
// their snapshots.
type seedFile struct {
	Accounts  []*models.Account  `json:"accounts"`
	Snapshots []*models.Snapshot `json:"snapshots"`
}

func seedsDir() string {
	return filepath.Join("db", "seeds")
}

func resolveSeedPath(arg string) (string, error) {
	if strings.HasSuffix(arg, ".json") {
		if _, err := os.Stat(arg); err != nil {
			return "", fmt.Errorf("seed file %s: %w", arg, err)
		}
		return arg, nil
	}
	path := filepath.Join(seedsDir(), arg+".json")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("seed %q not found in %s", arg, seedsDir())
	}
	return path, nil
}

func listSeedNames() []string {
	entries, err := os.ReadDir(seedsDir())
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(names)
	return names
}

func seedCommand(logger *common.Logger, cfg *common.Config, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation prompt")
	fs.Parse(args)

	if fs.NArg() == 0 {
		if names := listSeedNames(); len(names) > 0 {
			fmt.Fprintln(os.Stderr, "Available seeds:")
			for _, n := range names {
				fmt.Fprintf(os.Stderr, "  %s\n", n)
			}
		}
		return fmt.Errorf("missing seed name (or path)")
	}

	path, err := resolveSeedPath(fs.Arg(0))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if !confirm(fmt.Sprintf("Replace the current database with seed %q?", fs.Arg(0)), *yes) {
		return fmt.Errorf("aborted")
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	preName := defaultBackupName() + "-pre-seed"
	if err := writeBackup(store, backupPath(cfg, preName), false); err != nil {
		return err
	}
	if err := store.DB().Badger().DropAll(); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}

	ctx := context.Background()
	for _, account := range seed.Accounts {
		if err := store.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("seed account %q: %w", account.ID, err)
		}
	}
	for _, snapshot := range seed.Snapshots {
		if err := store.UpsertSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("seed snapshot %s/%s: %w", snapshot.AccountID, snapshot.Date, err)
		}
	}

	fmt.Printf("Seeded %d accounts and %d snapshots from %s\n", len(seed.Accounts), len(seed.Snapshots), path)
	return nil
}

func clearCommand(logger *common.Logger, cfg *common.Config, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation prompt")
	fs.Parse(args)

	if !confirm("Remove ALL accounts and snapshots?", *yes) {
		return fmt.Errorf("aborted")
	}

	store, err := openStore(logger, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	preName := defaultBackupName() + "-pre-clear"
	if err := writeBackup(store, backupPath(cfg, preName), false); err != nil {
		return err
	}
	if err := store.DB().Badger().DropAll(); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}

	fmt.Printf("Database cleared (previous state saved as %s)\n", preName)
	return nil
}

func listBackupNames(cfg *common.Config) ([]string, error) {
	entries, err := os.ReadDir(backupDir(cfg))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if !e.IsDir() && strings.HasPrefix(n, backupPrefix) && strings.HasSuffix(n, backupSuffix) {
			names = append(names, strings.TrimSuffix(strings.TrimPrefix(n, backupPrefix), backupSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func cleanCommand(cfg *common.Config, args []string) error {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	yes := fs.Bool("y", false, "skip confirmation prompt")
	fs.Parse(args)

	names, err := listBackupNames(cfg)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No backup files to delete")
		return nil
	}

	if !confirm(fmt.Sprintf("Delete %d backup file(s)?", len(names)), *yes) {
		return fmt.Errorf("aborted")
	}

	for _, name := range names {
		if err := os.Remove(backupPath(cfg, name)); err != nil {
			return err
		}
	}
	fmt.Printf("Deleted %d backup file(s)\n", len(names))
	return nil
}
