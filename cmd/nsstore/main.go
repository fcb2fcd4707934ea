// nsstore is a small inspection tool for namespaced bbolt stores. It
// opens a database file, optionally scopes it to a namespace, and runs
// a single property-style operation against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/21GramConsulting/storage-api/storage"
	"github.com/21GramConsulting/storage-api/storage/access"
	bboltstore "github.com/21GramConsulting/storage-api/storage/bbolt"
	"github.com/21GramConsulting/storage-api/storage/namespace"
)

var (
	dbPath  string
	ns      string
	verbose bool
)

// open builds the store stack: bbolt file, namespace view when --ns is
// given, property accessor on top. The returned closer releases the
// database file.
func open() (*access.Object, func() error, error) {
	store, err := bboltstore.New(bboltstore.Config{Path: dbPath})

	if err != nil {
		return nil, nil, err
	}

	var target storage.Store = store

	if ns != "" {
		// a nil logger stays silent; namespace scopes it via utils/log
		var logger *zap.Logger

		if verbose {
			logger, err = zap.NewDevelopment()

			if err != nil {
				store.Close()

				return nil, nil, err
			}
		}

		target, err = namespace.New(store, ns, namespace.WithLogger(logger))

		if err != nil {
			store.Close()

			return nil, nil, err
		}
	}

	return access.Wrap(target), store.Close, nil
}

func withObject(fn func(object *access.Object) error) error {
	object, closeStore, err := open()

	if err != nil {
		return err
	}

	defer closeStore()

	return fn(object)
}

var rootCmd = &cobra.Command{
	Use:           "nsstore",
	Short:         "Inspect and edit namespaced key-value stores",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the value stored under KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			value, ok, err := object.Get(args[0])

			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("no entry under %q", args[0])
			}

			fmt.Println(value)

			return nil
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store VALUE under KEY",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			ok, err := object.Set(args[0], args[1])

			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("%q collides with a reserved member and cannot be written", args[0])
			}

			return nil
		})
	},
}

var delCmd = &cobra.Command{
	Use:   "del KEY",
	Short: "Remove the entry stored under KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			_, err := object.Delete(args[0])

			return err
		})
	},
}

var hasCmd = &cobra.Command{
	Use:   "has KEY",
	Short: "Exit 0 when an entry is stored under KEY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			ok, err := object.Has(args[0])

			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("no entry under %q", args[0])
			}

			return nil
		})
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all keys in the selected scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			keys, err := object.Keys()

			if err != nil {
				return err
			}

			for _, key := range keys {
				fmt.Println(key)
			}

			return nil
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every key and value in the selected scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			keys, err := object.Keys()

			if err != nil {
				return err
			}

			for _, key := range keys {
				value, ok, err := object.Target().GetItem(key)

				if err != nil {
					return err
				}

				if !ok {
					continue
				}

				fmt.Printf("%s=%s\n", key, value)
			}

			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry in the selected scope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withObject(func(object *access.Object) error {
			return object.Target().Clear()
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the bbolt database file")
	rootCmd.PersistentFlags().StringVar(&ns, "ns", "", "namespace to scope operations to (may be dotted, e.g. outer.inner)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log namespace operations")
	if err := rootCmd.MarkPersistentFlagRequired("db"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(getCmd, setCmd, delCmd, hasCmd, keysCmd, dumpCmd, clearCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "nsstore:", err)
		os.Exit(1)
	}
}
