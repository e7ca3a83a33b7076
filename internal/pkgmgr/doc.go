// Package pkgmgr wraps the two supported JavaScript package managers
// (npm and yarn) for repo-setup.
//
// It covers three concerns of the setup flow:
//   - Tooling verification: when yarn is the chosen manager, probe for it
//     silently and install it globally via npm when missing. A failed
//     install here is fatal — every later step depends on the manager.
//   - Manifest detection and reading: a folder participates in the
//     install step if and only if it contains a package.json directly
//     inside it. The manifest is read tolerantly (JSONC comments are
//     accepted) purely to enrich progress output; presence, not validity,
//     is the contract.
//   - Dependency installation: run the manager's install command with the
//     working directory set to each cloned folder, output streamed.
//     Per-folder failures are reported and tolerated.
package pkgmgr
