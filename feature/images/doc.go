// Package images links product records to the images stored in their
// storage folders.
//
// For a product code the Service:
//
//  1. finds the product through the persistence adapter
//  2. resolves the folder named after the code under the configured parent
//  3. lists the folder's images, following shortcuts, in name order
//  4. labels them code-1 .. code-N and writes the list to the product
//
// A missing product, folder or image set is logged and reported as a
// non-linked result, not as an error. ProcessAll runs many codes with
// bounded concurrency, and the Handler exposes both over HTTP.
package images
