package project

import "github.com/vvka-141/autocheck/pkg/autocheck"

// PackageManager knows the command lines of one npm-compatible client.
type PackageManager struct {
	Name     string
	Lockfile string
	install  []string
	run      []string
	exec     []string
}

var (
	NPM  = PackageManager{Name: "npm", Lockfile: "package-lock.json", install: []string{"install"}, run: []string{"run"}, exec: []string{"exec", "--"}}
	PNPM = PackageManager{Name: "pnpm", Lockfile: "pnpm-lock.yaml", install: []string{"install"}, run: []string{"run"}, exec: []string{"exec"}}
	Yarn = PackageManager{Name: "yarn", Lockfile: "yarn.lock", install: []string{"install"}, run: []string{"run"}, exec: []string{"exec"}}
)

// DetectPackageManager picks the client from the lockfile present. pnpm wins
// over yarn; npm is the fallback whether or not package-lock.json exists.
func (p *Project) DetectPackageManager() PackageManager {
	for _, pm := range []PackageManager{PNPM, Yarn} {
		if p.Exists(pm.Lockfile) {
			return pm
		}
	}
	return NPM
}

// InstallCommand installs dependencies.
func (pm PackageManager) InstallCommand() autocheck.Command {
	return pm.command("install", pm.install)
}

// RunScriptCommand runs a package.json script.
func (pm PackageManager) RunScriptCommand(script string) autocheck.Command {
	return pm.command(script, append(append([]string{}, pm.run...), script))
}

// TypecheckCommand runs the local tsc without emitting output.
func (pm PackageManager) TypecheckCommand() autocheck.Command {
	return pm.command("typecheck", append(append([]string{}, pm.exec...), "tsc", "--noEmit"))
}

func (pm PackageManager) command(name string, args []string) autocheck.Command {
	return autocheck.Command{Name: name, Bin: pm.Name, Args: append([]string{}, args...)}
}
