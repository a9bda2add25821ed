package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"dtp/internal/config"
	"dtp/internal/domain"
	"dtp/internal/engine"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	engine *engine.Engine
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, eng *engine.Engine) *Formatter {
	return &Formatter{
		config: cfg,
		engine: eng,
	}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	outputPath := f.config.GetOutputPath()

	// Read JSON file
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	// Parse JSON
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                  Documentation Run Statistics                 ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	// Total Files
	fmt.Printf("│ %-31s │ ", "Total Files")
	color.White("%-27d │\n", meta.TotalFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Passed Files
	fmt.Printf("│ %-31s │ ", "Passed Files")
	color.Green("%-27d │\n", meta.PassedFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Files
	fmt.Printf("│ %-31s │ ", "Failed Files")
	color.Red("%-27d │\n", meta.FailedFiles)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Checked Regions
	fmt.Printf("│ %-31s │ ", "Checked Regions")
	color.White("%-27d │\n", meta.CheckedRegions)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Regions
	fmt.Printf("│ %-31s │ ", "Failed Regions")
	color.Red("%-27d │\n", meta.FailedRegions)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Duration
	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Workers
	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timestamp
	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedFiles == 0 {
		color.Green("✓ All documentation checks passed!")
	} else {
		color.Red("✗ %d file(s) failed with %d region failure(s)", meta.FailedFiles, meta.FailedRegions)
		fmt.Println()
		f.printFailedDocsTree(output.Details)
	}

	return nil
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.Failure
	IsFile   bool
}

// printFailedDocsTree prints a tree structure of failed documentation files
func (f *Formatter) printFailedDocsTree(failures []domain.Failure) {
	if len(failures) == 0 {
		return
	}

	// Group failures by file path
	fileMap := make(map[string][]domain.Failure)
	for _, failure := range failures {
		fileMap[failure.FilePath] = append(fileMap[failure.FilePath], failure)
	}

	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
		IsFile:   false,
	}

	// Process each file
	for filePath, fileFailures := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filePath, "./"), "/")
		current := root

		// Navigate/create tree nodes for each path part
		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			// If this is the file (last part), add failures
			if i == len(parts)-1 {
				current.Failures = fileFailures
			}
		}
	}

	// Print tree recursively
	f.printTreeNode(root, "", true, true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isLast bool, isRoot bool) {
	// Sort children for consistent output
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Print children
	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		// Determine connector
		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "   |_"
		} else {
			connector = prefix + "  |_"
		}

		// Print child node
		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		// Print failed regions if this is a file
		if child.IsFile && len(child.Failures) > 0 {
			for j, failure := range child.Failures {
				isLastCase := j == len(child.Failures)-1
				var casePrefix string
				if isLastChild {
					if isLastCase {
						casePrefix = strings.ReplaceAll(prefix, "|", " ") + "        |_"
					} else {
						casePrefix = prefix + "  |        |_"
					}
				} else {
					if isLastCase {
						casePrefix = prefix + "  |        |_"
					} else {
						casePrefix = prefix + "  |  |     |_"
					}
				}
				color.Red("%s%s", casePrefix, regionLabel(failure))
			}
		}

		// Recursively print children
		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else if isLastChild {
			newPrefix = strings.ReplaceAll(prefix, "|", " ") + "  "
		} else {
			newPrefix = prefix + "  |"
		}
		f.printTreeNode(child, newPrefix, isLastChild, false)
	}
}

// regionLabel renders a failure as "kind (line N)" for trees and lists.
func regionLabel(failure domain.Failure) string {
	return failure.Kind + " (line " + strconv.Itoa(failure.Line) + ")"
}

// CountRegions returns the total number of checkable regions across the
// given documentation files.
func (f *Formatter) CountRegions(docs []string) (int, error) {
	var total int
	for _, docPath := range docs {
		infos, err := f.inventory(docPath)
		if err != nil {
			return 0, err
		}
		total += len(infos)
	}
	return total, nil
}

// normalizedPathForKey returns a path key for matching (same logic as commands package).
func normalizedPathForKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	p = filepath.ToSlash(p)
	return strings.ToLower(p)
}

// PrintDocList prints a list of documentation files, optionally with
// their regions. failedPaths is optional; if set, files in this set are
// marked with [F] in red (from last run).
func (f *Formatter) PrintDocList(docs []string, showRegions bool, failedPaths map[string]struct{}) error {
	if showRegions {
		// Display tree view with regions
		color.Green("Found %d documentation file(s) with regions:\n", len(docs))

		for i, docPath := range docs {
			infos, err := f.inventory(docPath)
			if err != nil {
				color.Red("Error reading documentation file %s: %v", docPath, err)
				continue
			}

			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, docPath)
			if err != nil {
				relPath = docPath
			}

			failMarker := ""
			if len(failedPaths) > 0 {
				key := normalizedPathForKey(f.config.ProjectPath, docPath)
				if _, ok := failedPaths[key]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			// Print documentation file as root node
			isLastFile := i == len(docs)-1
			if isLastFile {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}

			// Print regions as children
			if len(infos) == 0 {
				var prefix string
				if isLastFile {
					prefix = "    └── "
				} else {
					prefix = "│   └── "
				}
				fmt.Printf("%s%s\n", prefix, color.RedString("(no executable regions)"))
			} else {
				for j, info := range infos {
					isLastRegion := j == len(infos)-1

					var prefix string
					if isLastFile {
						if isLastRegion {
							prefix = "    └── "
						} else {
							prefix = "    ├── "
						}
					} else {
						if isLastRegion {
							prefix = "│   └── "
						} else {
							prefix = "│   ├── "
						}
					}

					label := fmt.Sprintf("%s:%d %s", info.Kind, info.Start, info.Summary)
					fmt.Printf("%s%s\n", prefix, color.YellowString(label))
				}
			}

			// Add spacing between files (except for the last one)
			if i < len(docs)-1 {
				fmt.Println()
			}
		}
	} else {
		// Display simple list of documentation files
		color.Green("Found %d documentation file(s):\n", len(docs))

		for i, docPath := range docs {
			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, docPath)
			if err != nil {
				relPath = docPath
			}

			failMarker := ""
			if len(failedPaths) > 0 {
				key := normalizedPathForKey(f.config.ProjectPath, docPath)
				if _, ok := failedPaths[key]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			if i == len(docs)-1 {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}
		}
	}

	return nil
}

func (f *Formatter) inventory(docPath string) ([]engine.RegionInfo, error) {
	doc, err := engine.Load(docPath)
	if err != nil {
		return nil, err
	}
	return f.engine.Inventory(doc)
}
