package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.store/internal/engine"
	"go.store/internal/storage"
)

// startREPL runs the interactive loop against db until .exit or EOF.
// Unlike the teacher's startREPL, which forwards every line straight to
// cobra, this loop dispatches dot-commands and statements itself, since
// neither maps onto cobra's subcommand model.
func startREPL(db *engine.Database) {
	reader := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("db > ")

		if !reader.Scan() {
			return
		}

		input := strings.TrimSpace(reader.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ".") {
			if !runMetaCommand(db, input) {
				return
			}
			continue
		}

		runStatement(db, input)
	}
}

// runMetaCommand handles a leading-dot command, returning false if the
// REPL should stop.
func runMetaCommand(db *engine.Database, input string) bool {
	switch input {
	case ".exit":
		return false
	case ".btree":
		db.PrintTree(os.Stdout)
		return true
	case ".constants":
		printConstants()
		return true
	default:
		fmt.Printf("Unrecognized command: '%s'.\n", input)
		return true
	}
}

func printConstants() {
	fmt.Println("Constants:")
	for _, name := range []string{"ROW_SIZE", "LEAF_NODE_MAX_CELLS", "LEAF_NODE_LEFT_SPLIT_COUNT", "LEAF_NODE_RIGHT_SPLIT_COUNT", "INTERNAL_NODE_MAX_KEYS"} {
		fmt.Printf("%s: %d\n", name, engine.Constants()[name])
	}
}

func runStatement(db *engine.Database, input string) {
	stmt, err := parseStatement(input)
	if err != nil {
		fmt.Println(err)
		return
	}

	switch stmt.kind {
	case stmtInsert:
		if err := db.Insert(stmt.key, &stmt.row); err != nil {
			if err == storage.ErrDuplicateKey {
				fmt.Println("Error: Duplicate key.")
				return
			}
			fmt.Println(err)
			return
		}
		fmt.Println("Executed.")

	case stmtSelect:
		db.SelectAll(func(key uint32, row storage.Row) {
			fmt.Printf("(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		})
		fmt.Println("Executed.")

	case stmtDelete:
		if err := db.Delete(stmt.key); err != nil {
			if err == storage.ErrKeyNotFound {
				fmt.Println("Error: Key not found.")
				return
			}
			fmt.Println(err)
			return
		}
		fmt.Println("Executed.")
	}
}
