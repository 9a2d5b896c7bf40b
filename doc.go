/*
Package socsim provides a naive clocked hardware simulator, used to model the
startup logic of small FPGA SoCs: clock and reset generation, power-on reset
and reset synchronization across clock domains.

Parts (logic gates, flip-flops, counters) are described by a PartSpec and
composed into chips with Chip. A Circuit runs the resulting parts, one
simulation step at a time, with a built-in clock signal "clk".

Every component reads pin states from the previous step and writes new states
for the next one, so each component has exactly one step of propagation delay.
Clocked components latch their inputs on the step where AtTick returns true.

The sub-packages provide a part library (hwlib), test helpers (hwtest), the
clock and reset generator (crg), the bus address space allocator (soc) and
board descriptions (board).
*/
package socsim
