package config

import (
	"os"
	"path/filepath"
)

// Load 把配置文件反序列化到 out。
// 约定：
// 1) 绝对路径直接使用；
// 2) 相对路径先按当前目录解析；
// 3) 解析不到则从当前目录开始向上逐级查找。
func Load(cfgName string, out any) {
	if cfgName == "" {
		panic("config name is empty")
	}
	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}

	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	candidate := filepath.Join(curDir, cfgName)
	if fileExist(candidate) {
		load(candidate, out)
		return
	}
	load(findConfigUpward(curDir, cfgName), out)
}

func findConfigUpward(startDir, rel string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + rel + " from: " + startDir)
		}
		dir = parent
	}
}
