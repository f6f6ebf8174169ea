// Package viz renders simulation output for the terminal.
//
//   - [PlotRows]: asciigraph chart of average score against dispersion
//   - [ProgressModel]: Bubble Tea view of a running sweep, fed by
//     [ProgramObserver]
//   - [Canvas] and [RenderBoard]: Braille drawing of the board wires with
//     landing points
//
// Status lines printed by the CLI are built from the lipgloss styles here.
package viz
