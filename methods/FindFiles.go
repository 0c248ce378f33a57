package methods

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFiles 递归查找指定后缀的文件
func FindFiles(root string, exts ...string) []string {
	set := make(map[string]bool)
	for _, e := range exts {
		set[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	var files []string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err // 如果遇到错误，直接返回
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(info.Name())), ".")
		if set[ext] {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files
}
