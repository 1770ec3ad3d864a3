/*
Package vartable implements the camera variable table: the blendable sibling
of the context data table.

Variables hold plain numeric, vector, rotator and transform values (plus
pointer-free blendable structs), so the whole table lives in one byte buffer
with no reference arena. Its allocation info is produced by the rig builder and
consumed exactly like datatable.AllocationInfo.
*/
package vartable
